package config

import (
	"github.com/spf13/cobra"

	"powderteam/oaiprofile/internal/config"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage oaiprofile defaults",
		Long: "View and modify persistent oaiprofile defaults. Parameter defaults set\n" +
			"here apply to every render unless a parameter file, environment variable\n" +
			"or flag overrides them.\n\n" +
			"Configuration is stored at ~/.config/oaiprofile/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
