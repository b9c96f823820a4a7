// Package config holds the solver's run configuration, bound via
// spf13/viper so flags and environment variables resolve into one
// struct, the way the teacher's config package layers BaseConfig over
// viper-bound sources. No config file is read.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete, resolved set of parameters a solver run
// needs. InstanceFile comes from the positional argument of
// cmd/chi-solver, ExpectedChiFile keeps its default, and every other
// field has a cobra flag counterpart there.
type Config struct {
	InstanceFile string

	Timeout         time.Duration
	SolGatherPeriod time.Duration
	Balanced        bool
	ColorStrategy   int
	OutputFile      string
	Logging         bool

	Ranks           int
	Metrics         bool
	MetricsPort     int
	ExpectedChiFile string
}

// DefaultConfig mirrors the original CLI's defaults (§6).
func DefaultConfig() Config {
	return Config{
		Timeout:         60 * time.Second,
		SolGatherPeriod: 10 * time.Second,
		Balanced:        true,
		ColorStrategy:   0,
		OutputFile:      "output.txt",
		Logging:         false,
		Ranks:           1,
		Metrics:         false,
		MetricsPort:     9094,
		ExpectedChiFile: "expected_chi.txt",
	}
}

// FromViper resolves a Config from v, which cmd/chi-solver has already
// bound to cobra flags and environment variables.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	cfg.InstanceFile = v.GetString("instance")
	cfg.Timeout = time.Duration(v.GetInt("timeout")) * time.Second
	cfg.SolGatherPeriod = time.Duration(v.GetInt("sol_gather_period")) * time.Second
	cfg.Balanced = v.GetBool("balanced")
	cfg.ColorStrategy = v.GetInt("color_strategy")
	cfg.OutputFile = v.GetString("output")
	cfg.Logging = v.GetBool("logging")
	cfg.Ranks = v.GetInt("ranks")
	cfg.Metrics = v.GetBool("metrics")
	cfg.MetricsPort = v.GetInt("metrics-port")

	if cfg.InstanceFile == "" {
		return Config{}, fmt.Errorf("config: no DIMACS instance file given")
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("config: timeout must be a positive integer")
	}
	if cfg.SolGatherPeriod <= 0 {
		return Config{}, fmt.Errorf("config: sol_gather_period must be a positive integer")
	}
	if cfg.ColorStrategy < 0 || cfg.ColorStrategy > 3 {
		return Config{}, fmt.Errorf("config: color_strategy must be one of 0,1,2,3")
	}
	if cfg.Ranks <= 0 {
		return Config{}, fmt.Errorf("config: ranks must be a positive integer")
	}
	return cfg, nil
}
