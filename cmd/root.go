package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"powderteam/oaiprofile/cmd/commands/benches"
	cfgcmd "powderteam/oaiprofile/cmd/commands/config"
	histcmd "powderteam/oaiprofile/cmd/commands/history"
	"powderteam/oaiprofile/cmd/commands/params"
	"powderteam/oaiprofile/cmd/commands/render"
	tourcmd "powderteam/oaiprofile/cmd/commands/tour"
	"powderteam/oaiprofile/cmd/commands/validate"
	"powderteam/oaiprofile/internal/config"
	"powderteam/oaiprofile/internal/logging"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "oaiprofile",
		Short: "Render OAI 5G experiment requests for POWDER paired radio workbenches",
		Long: `oaiprofile builds the request document for an OpenAirInterface 5G
experiment on a POWDER paired radio workbench: a core-network host, a
gNodeB host and a UE host, each compute host wired to its SDR on the
selected bench, with startup commands that deploy OAI on every node.

Quick start:
  oaiprofile params                         # Show the parameters
  oaiprofile render --bench bench_b > r.xml # Render a request
  oaiprofile validate r.xml                 # Check it
  oaiprofile tour                           # Read the instructions`,
		PersistentPreRunE: setupLogging,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default from config, else warn)")
	cmd.PersistentFlags().String("log-format", "", "Log format: console or json")

	cmd.AddCommand(render.NewCommand())
	cmd.AddCommand(params.NewCommand())
	cmd.AddCommand(benches.NewCommand())
	cmd.AddCommand(tourcmd.NewCommand())
	cmd.AddCommand(validate.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(histcmd.NewCommand())

	return cmd
}

// setupLogging builds the diagnostic logger and stores it in the command
// context. The level comes from --log-level, then OAIPROFILE_LOG_LEVEL,
// then the persisted config.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = firstNonEmpty(flagValue(cmd, "log-level"), env.LogLevel, cfg.LogLevel, logCfg.Level)
	logCfg.Format = logging.Format(firstNonEmpty(flagValue(cmd, "log-format"), env.LogFormat, string(logCfg.Format)))

	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger.Named(cmd.Name())))
	return nil
}

func flagValue(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
