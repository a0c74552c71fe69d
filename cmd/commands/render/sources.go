package render

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"powderteam/oaiprofile/internal/config"
	"powderteam/oaiprofile/internal/paramfile"
	"powderteam/oaiprofile/internal/portal"
	"powderteam/oaiprofile/internal/profile"
)

// paramFlags maps each command-line flag to the parameter it sets.
var paramFlags = []struct {
	Flag  string
	Param string
}{
	{"sdr-nodetype", profile.ParamSDRNodeType},
	{"cn-nodetype", profile.ParamCNNodeType},
	{"bench", profile.ParamBenchID},
	{"ran-hash", profile.ParamRANHash},
	{"cn-hash", profile.ParamCNHash},
	{"sdr-image", profile.ParamSDRImage},
}

// registerParamFlags adds one string flag per parameter, described from
// the schema.
func registerParamFlags(cmd *cobra.Command, pc *portal.Context) {
	for _, f := range paramFlags {
		p, ok := pc.Lookup(f.Param)
		if !ok {
			continue
		}
		usage := p.Description
		if p.Type == portal.TypeEnum {
			usage = fmt.Sprintf("%s (%s, default %s)", usage, strings.Join(p.LegalNames(), "|"), p.Default)
		}
		cmd.Flags().String(f.Flag, "", usage)
	}
}

// flagValues returns the parameter values set explicitly on the command line.
func flagValues(cmd *cobra.Command) map[string]string {
	out := make(map[string]string)
	for _, f := range paramFlags {
		if !cmd.Flags().Changed(f.Flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.Flag)
		out[f.Param] = v
	}
	return out
}

// bindingSources returns the non-interactive layers in increasing
// precedence: persisted config, parameter file, environment, flags.
func bindingSources(cmd *cobra.Command) ([]portal.Source, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	sources := []portal.Source{portal.Values("config", cfg.Params())}

	if path, _ := cmd.Flags().GetString("params"); path != "" {
		sources = append(sources, paramfile.Source{Path: path})
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	sources = append(sources,
		portal.Values("environment", env.Params()),
		portal.Values("flags", flagValues(cmd)),
	)
	return sources, nil
}

// wizardSource layers the wizard's answers last. A cleared answer restores
// the default even when an earlier layer supplied a value.
func wizardSource(values map[string]string) portal.Source {
	return portal.Answers("wizard", values)
}
