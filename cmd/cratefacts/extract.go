package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cratefacts/internal/archive"
	"cratefacts/internal/config"
	"cratefacts/internal/extract"
	"cratefacts/internal/facts"
	"cratefacts/internal/observ"
	"cratefacts/internal/prof"
	"cratefacts/internal/snapshot"
	"cratefacts/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract <snapshot.yaml>",
	Short: "Extract facts from a crate snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringP("out", "o", "", "output path (overrides [output].path)")
	extractCmd.Flags().String("format", "", "output format: msgpack|sqlite (overrides [output].format)")
	extractCmd.Flags().String("archive", "", "source archive root, directory or afs URL (overrides [archive].root)")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	for flag, dst := range map[string]*string{
		"out":     &cfg.Output.Path,
		"format":  &cfg.Output.Format,
		"archive": &cfg.Archive.Root,
	} {
		if cmd.Flags().Lookup(flag) == nil {
			continue
		}
		v, err := cmd.Flags().GetString(flag)
		if err != nil {
			return config.Config{}, err
		}
		if v != "" {
			*dst = v
		}
	}
	return cfg, cfg.Validate()
}

func runExtract(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if perr := session.Stop(); perr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", perr)
		}
	}()

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	idx := timer.Begin("load-snapshot")
	snap, err := snapshot.Load(args[0])
	timer.End(idx, "")
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	var archiver *archive.Archiver
	if cfg.Archive.Root != "" {
		archiver, err = archive.New(cfg.Archive.Root, cfg.Archive.Exclude)
		if err != nil {
			return err
		}
	}

	format, err := store.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	sink, err := store.Open(cmd.Context(), format, cfg.Output.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	res, err := extract.ExtractCrate(cmd.Context(), snap, snap, extract.Options{
		Sink:     sink,
		Archiver: archiver,
		Timer:    timer,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSummary(out, res, cfg, format, archiver)
	if verbose {
		printKindCounts(out, res.Counts)
	}
	if showTimings {
		fmt.Fprint(out, timer.Summary())
	}
	return nil
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	cpu, err := flags.GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	mem, err := flags.GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	return prof.Start(prof.Options{CPUPath: cpu, MemPath: mem})
}

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	kindColor  = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)
	countColor = color.New(color.FgYellow)
)

func printSummary(out io.Writer, res *extract.Result, cfg config.Config, format store.Format, archiver *archive.Archiver) {
	fmt.Fprintf(out, "%s crate %s %s\n", okColor.Sprint("extracted"), res.Crate, dimColor.Sprintf("(run %s)", res.RunID))
	fmt.Fprintf(out, "  facts %s, modules %s, functions %s, files %s\n",
		countColor.Sprint(res.Facts), countColor.Sprint(res.Modules),
		countColor.Sprint(res.Functions), countColor.Sprint(len(res.Files)))
	fmt.Fprintf(out, "  output %s (%s)\n", cfg.Output.Path, format)
	if archiver != nil {
		fmt.Fprintf(out, "  archive %s (%d files)\n", archiver.Root(), len(archiver.Archived()))
	}
}

func printKindCounts(out io.Writer, counts map[facts.Kind]int) {
	for _, k := range facts.Kinds() {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(out, "  %s %d\n", kindColor.Sprintf("%-14s", k), n)
		}
	}
}
