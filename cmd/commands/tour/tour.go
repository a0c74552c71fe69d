package tour

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"powderteam/oaiprofile/internal/tour"
	"powderteam/oaiprofile/internal/tui"
)

// NewCommand returns the "tour" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Show the experiment tour",
		Long: `Show the tour attached to the request: what the experiment deploys and
step-by-step instructions for bringing up the core network, gNodeB and UE.

In a terminal the tour opens in a scrollable viewer; --plain (or a
non-terminal stdout) prints the markdown instead.`,
		Args:         cobra.NoArgs,
		RunE:         runTour,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("plain", false, "Print the markdown without the viewer")

	return cmd
}

func runTour(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	if !plain && cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.RunTourViewer("OAI 5G paired workbench", tour.Markdown())
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), tour.Markdown())
	return err
}
