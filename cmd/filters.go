package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var filtersCmd = &cobra.Command{
	Use:   "filters <query>",
	Short: "Show the filters compiled from a query without searching",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showFilters(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(filtersCmd)

	filtersCmd.Flags().Bool("no-ai", false, "compile the query with the heuristic parser only")
}

func showFilters(cmd *cobra.Command, query string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, f := setup(ctx, cmd)

	filters, path := f.Compile(ctx, query)
	pretty, err := json.MarshalIndent(filters, "", "  ")
	if err != nil {
		logger.Fatal("encoding filters", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Extracted filters (%s): %s\n", path, pretty)
	fmt.Fprintf(out, "Sources: %s\n", strings.Join(f.Sources(), ", "))

	statuses, err := f.Describe()
	if err != nil {
		logger.Fatal("describing filter steps", zap.Error(err))
	}

	fmt.Fprintln(out, "Filter steps:")
	for _, status := range statuses {
		state := "enabled"
		if !status.Enabled {
			state = "disabled"
			if status.Reason != "" {
				state += " (" + status.Reason + ")"
			}
		}
		fmt.Fprintf(out, "  - %s: %s%s\n", status.Name, state, details(status.Details))
	}
}

func details(d map[string]string) string {
	if len(d) == 0 {
		return ""
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+d[k])
	}
	return " [" + strings.Join(parts, " ") + "]"
}
