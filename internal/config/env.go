package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"powderteam/oaiprofile/internal/profile"
)

// EnvPrefix prefixes every environment variable read by oaiprofile.
const EnvPrefix = "OAIPROFILE"

// Env holds overrides read from the environment, e.g. OAIPROFILE_BENCH_ID.
type Env struct {
	SDRNodeType string `envconfig:"SDR_NODETYPE"`
	CNNodeType  string `envconfig:"CN_NODETYPE"`
	BenchID     string `envconfig:"BENCH_ID"`
	RANHash     string `envconfig:"RAN_HASH"`
	CNHash      string `envconfig:"CN_HASH"`
	SDRImage    string `envconfig:"SDR_IMAGE"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`
}

// LoadEnv reads the OAIPROFILE_* variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("config: failed to read environment: %w", err)
	}
	return &env, nil
}

// Params returns the parameter overrides keyed by parameter name. Unset
// variables are omitted.
func (e *Env) Params() map[string]string {
	out := make(map[string]string)
	for name, v := range map[string]string{
		profile.ParamSDRNodeType: e.SDRNodeType,
		profile.ParamCNNodeType:  e.CNNodeType,
		profile.ParamBenchID:     e.BenchID,
		profile.ParamRANHash:     e.RANHash,
		profile.ParamCNHash:      e.CNHash,
		profile.ParamSDRImage:    e.SDRImage,
	} {
		if v != "" {
			out[name] = v
		}
	}
	return out
}
