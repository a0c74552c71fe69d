package config

import (
	"fmt"
	"strings"

	"powderteam/oaiprofile/internal/logging"
	"powderteam/oaiprofile/internal/portal"
	"powderteam/oaiprofile/internal/profile"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-bench").
	Name string

	// Param is the profile parameter this key seeds, if any. Values of such
	// keys are checked against the parameter's legal set before saving.
	Param string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Check, when set, validates values of keys that seed no parameter.
	Check func(value string) error

	// Values lists the accepted values of keys that seed no parameter.
	Values []string

	// Default describes what an unset key falls back to.
	Default string
}

// Choice is one selectable value of a key. The empty Value unsets the key.
type Choice struct {
	Value string
	Label string
}

// Choices lists the values the key accepts, the unset choice first.
// Parameter keys offer the parameter's legal values with their labels.
func (k *KeySpec) Choices() []Choice {
	unset := Choice{Label: "not set"}
	var choices []Choice
	if k.Param != "" {
		if p, ok := profile.NewContext().Lookup(k.Param); ok {
			unset.Label = "not set, profile default " + p.Default
			for _, lv := range p.LegalValues {
				choices = append(choices, Choice{Value: lv.Value, Label: lv.Label})
			}
		}
	} else {
		if k.Default != "" {
			unset.Label = "not set, default " + k.Default
		}
		for _, v := range k.Values {
			choices = append(choices, Choice{Value: v})
		}
	}
	return append([]Choice{unset}, choices...)
}

// Validate checks value before it is stored. An empty value unsets the key
// and is always accepted.
func (k *KeySpec) Validate(value string) error {
	if value == "" {
		return nil
	}
	if k.Param != "" {
		_, err := profile.NewContext().Bind(portal.Values("config "+k.Name, map[string]string{k.Param: value}))
		return err
	}
	if k.Check != nil {
		return k.Check(value)
	}
	return nil
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "default-bench",
		Description: "Workbench used when --bench is not specified",
		Param:       profile.ParamBenchID,
		Get:         func(cfg *Config) string { return cfg.DefaultBench },
		Set:         func(cfg *Config, v string) { cfg.DefaultBench = v },
	},
	{
		Name:        "sdr-nodetype",
		Description: "Compute node type paired with the SDRs",
		Param:       profile.ParamSDRNodeType,
		Get:         func(cfg *Config) string { return cfg.SDRNodeType },
		Set:         func(cfg *Config, v string) { cfg.SDRNodeType = v },
	},
	{
		Name:        "cn-nodetype",
		Description: "Compute node type for the core network host",
		Param:       profile.ParamCNNodeType,
		Get:         func(cfg *Config) string { return cfg.CNNodeType },
		Set:         func(cfg *Config, v string) { cfg.CNNodeType = v },
	},
	{
		Name:        "log-level",
		Description: "Minimum log level (debug, info, warn, error)",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
		Values:      []string{"debug", "info", "warn", "error"},
		Default:     logging.DefaultConfig().Level,
		Check: func(v string) error {
			_, err := logging.ParseLevel(v)
			return err
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
