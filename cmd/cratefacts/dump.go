package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cratefacts/internal/facts"
	"cratefacts/internal/store"
	"cratefacts/internal/trap"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <facts.mp>",
	Short: "Print the rows of a msgpack fact file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := cmd.Flags().GetStringSlice("kind")
		if err != nil {
			return err
		}
		filter, err := kindFilter(kinds)
		if err != nil {
			return err
		}
		batch, err := store.ReadFile(args[0])
		if err != nil {
			return err
		}
		dumpBatch(cmd.OutOrStdout(), batch, filter)
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringSlice("kind", nil, "only print rows of these kinds (e.g. Function,Location)")
}

func kindFilter(names []string) (map[facts.Kind]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	filter := make(map[facts.Kind]bool, len(names))
	for _, name := range names {
		k, ok := facts.ParseKind(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown fact kind %q", name)
		}
		filter[k] = true
	}
	return filter, nil
}

func dumpBatch(out io.Writer, batch *trap.Batch, filter map[facts.Kind]bool) {
	fmt.Fprintf(out, "%s %s %s\n", okColor.Sprint("crate"), batch.Crate,
		dimColor.Sprintf("(schema %d, run %s, %d rows, %d locations)", batch.Schema, batch.RunID, len(batch.Rows), len(batch.Locations)))
	keep := func(k facts.Kind) bool { return filter == nil || filter[k] }
	for _, row := range batch.Rows {
		if keep(row.Kind()) {
			printRow(out, row)
		}
	}
	for _, loc := range batch.Locations {
		if keep(facts.KindLocation) {
			printRow(out, loc)
		}
	}
}

func printRow(out io.Writer, row facts.Row) {
	fields := strings.TrimPrefix(fmt.Sprintf("%+v", row), "&")
	fmt.Fprintf(out, "%s %s\n", kindColor.Sprintf("%-14s", row.Kind()), fields)
}
