package benches

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"powderteam/oaiprofile/internal/profile"
)

// NewCommand returns the "benches" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benches",
		Short: "List the paired radio workbenches",
		Long: `List the paired radio workbenches and their SDR units. The first unit
of each bench serves the gNodeB, the second the UE.

Examples:
  oaiprofile benches
  oaiprofile benches -o json`,
		Args:         cobra.NoArgs,
		RunE:         runBenches,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runBenches(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	switch output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(profile.Benches)
	case "table", "":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGNB RADIO\tUE RADIO\tDESCRIPTION")
	for _, b := range profile.Benches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.GNBRadio, b.UERadio, b.Label)
	}
	return w.Flush()
}
