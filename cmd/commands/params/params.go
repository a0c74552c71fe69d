package params

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"powderteam/oaiprofile/internal/config"
	"powderteam/oaiprofile/internal/portal"
	"powderteam/oaiprofile/internal/profile"
)

// NewCommand returns the "params" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the profile parameters",
		Long: `List every profile parameter with its type, default and legal values.

With --resolved, also show the value each parameter currently resolves to
from persisted config and OAIPROFILE_* environment variables, and where that
value came from.

Examples:
  oaiprofile params
  oaiprofile params --resolved
  oaiprofile params -o json`,
		Args:         cobra.NoArgs,
		RunE:         runParams,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.Flags().Bool("resolved", false, "Show values resolved from config and environment")

	return cmd
}

type paramView struct {
	portal.Parameter
	Value  string `json:"value,omitempty"`
	Origin string `json:"origin,omitempty"`
}

func runParams(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	resolved, _ := cmd.Flags().GetBool("resolved")

	pc := profile.NewContext()
	views := make([]paramView, 0, len(pc.Names()))
	for _, p := range pc.Parameters() {
		views = append(views, paramView{Parameter: p})
	}

	if resolved {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		env, err := config.LoadEnv()
		if err != nil {
			return err
		}
		b, err := pc.Bind(portal.Values("config", cfg.Params()), portal.Values("environment", env.Params()))
		if err != nil {
			return err
		}
		for i := range views {
			views[i].Value = b.Get(views[i].Name)
			views[i].Origin = b.Origin(views[i].Name)
		}
	}

	switch output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "table", "":
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := "NAME\tTYPE\tDEFAULT\tLEGAL VALUES\tDESCRIPTION"
	if resolved {
		header += "\tVALUE\tORIGIN"
	}
	fmt.Fprintln(w, header)
	for _, v := range views {
		legal := "-"
		if len(v.LegalValues) > 0 {
			legal = strings.Join(v.LegalNames(), ", ")
		}
		def := v.Default
		if def == "" {
			def = "-"
		}
		desc := v.Description
		if v.Advanced {
			desc += " (advanced)"
		}
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s", v.Name, v.Type, def, legal, desc)
		if resolved {
			value := v.Value
			if value == "" {
				value = "-"
			}
			line += fmt.Sprintf("\t%s\t%s", value, v.Origin)
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}
