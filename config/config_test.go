package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFromViperResolvesBoundValues(t *testing.T) {
	r := require.New(t)
	v := viper.New()
	v.Set("instance", "myciel3.col")
	v.Set("timeout", 60)
	v.Set("sol_gather_period", 10)
	v.Set("balanced", true)
	v.Set("color_strategy", 0)
	v.Set("output", "output.txt")
	v.Set("logging", false)
	v.Set("ranks", 1)
	v.Set("metrics", false)
	v.Set("metrics-port", 9094)

	cfg, err := FromViper(v)
	r.NoError(err)
	r.Equal("myciel3.col", cfg.InstanceFile)
	r.True(cfg.Balanced)
	r.Equal(1, cfg.Ranks)
}

func TestFromViperRejectsMissingInstance(t *testing.T) {
	r := require.New(t)
	v := viper.New()
	v.Set("timeout", 60)
	v.Set("sol_gather_period", 10)
	v.Set("ranks", 1)

	_, err := FromViper(v)
	r.Error(err)
}

func TestFromViperRejectsBadColorStrategy(t *testing.T) {
	r := require.New(t)
	v := viper.New()
	v.Set("instance", "g.col")
	v.Set("timeout", 60)
	v.Set("sol_gather_period", 10)
	v.Set("ranks", 1)
	v.Set("color_strategy", 9)

	_, err := FromViper(v)
	r.Error(err)
}
