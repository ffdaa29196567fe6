package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cratefacts/internal/config"
	"cratefacts/internal/trace"
)

// setupTracing builds the tracer from the config's trace section with flag
// overrides and attaches it to the command context. The returned cleanup
// dumps the failure ring when failed is true.
func setupTracing(cmd *cobra.Command, cfg config.Config) (func(failed bool), error) {
	flags := cmd.Root().PersistentFlags()
	for flag, dst := range map[string]*string{
		"trace":        &cfg.Trace.Output,
		"trace-level":  &cfg.Trace.Level,
		"trace-format": &cfg.Trace.Format,
	} {
		v, err := flags.GetString(flag)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		if v != "" {
			*dst = v
		}
	}
	// an output without a level means the user wants to see phases
	if cfg.Trace.Output != "" && flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
	}

	tcfg, err := cfg.TracerConfig()
	if err != nil {
		return nil, err
	}
	tracer, ring, err := trace.New(tcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	cleanup := func(failed bool) {
		if failed && ring != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before failure:")
			if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
