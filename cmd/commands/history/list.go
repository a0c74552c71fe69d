package history

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"powderteam/oaiprofile/internal/history"
	"powderteam/oaiprofile/internal/tui/components"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent renders",
		Long: `List recent renders stored locally.

Examples:
  oaiprofile history list
  oaiprofile history list --limit 50
  oaiprofile history list --bench bench_b
  oaiprofile history list --chart
  oaiprofile history list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("bench", "", "Only show renders for this workbench")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.Flags().Bool("chart", false, "Plot render durations above the table")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	bench, _ := cmd.Flags().GetString("bench")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := history.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []history.Entry
	if bench != "" {
		entries, err = repo.ListByBench(bench, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No renders recorded.")
		return nil
	}

	if chart, _ := cmd.Flags().GetBool("chart"); chart {
		fmt.Fprintln(cmd.OutOrStdout(), components.DurationChart("Render time", durations(entries), chartWidth))
		fmt.Fprintln(cmd.OutOrStdout())
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tBENCH\tRAN\tCN\tFORMAT\tOUTCOME\tDURATION\tOUTPUT\tDETAIL")
	fmt.Fprintln(w, "----\t-----\t---\t--\t------\t-------\t--------\t------\t------")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			dash(entry.Bench),
			dash(shortHash(entry.RANHash)),
			dash(shortHash(entry.CNHash)),
			entry.Format,
			entry.Outcome,
			formatDuration(entry.DurationMs),
			dash(entry.Output),
			dash(entry.Detail),
		)
	}
	w.Flush()
	return nil
}

const chartWidth = 72

// durations returns the render times oldest first; entries arrive newest first.
func durations(entries []history.Entry) []float64 {
	out := make([]float64, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = float64(entry.DurationMs)
	}
	return out
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// shortHash abbreviates full commit hashes; tags and branches pass through.
func shortHash(ref string) string {
	if len(ref) == 40 {
		return ref[:10]
	}
	return ref
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
