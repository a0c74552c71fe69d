package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"powderteam/oaiprofile/internal/config"
	"powderteam/oaiprofile/internal/util"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. An empty value unsets the key.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  oaiprofile config set default-bench bench_b\n" +
			"  oaiprofile config set log-level debug\n" +
			"  oaiprofile config set sdr-nodetype \"\"",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	key := util.NormalizeKey(args[0])

	spec := config.Lookup(key)
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := util.NormalizeKey(args[1])
	if err := spec.Validate(value); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s unset\n", spec.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
	return nil
}
