package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cratefacts/internal/trap"
	"cratefacts/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and fact schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cratefacts %s (fact schema %d)\n", version.Colored(), trap.SchemaVersion)
		if c := strings.TrimSpace(version.GitCommit); c != "" {
			fmt.Fprintf(out, "commit: %s\n", c)
		}
		if d := strings.TrimSpace(version.BuildDate); d != "" {
			fmt.Fprintf(out, "built:  %s\n", d)
		}
		return nil
	},
}
