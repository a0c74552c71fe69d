package history

import "github.com/spf13/cobra"

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage render history",
		Long: "View a local record of rendered requests and prune old entries.\n\n" +
			"History is stored locally in ~/.config/oaiprofile/oaiprofile.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
