package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ryotapoi/mdtoc/internal/core"
)

// loadConfig reads mdtoc.yaml and MDTOC_* environment variables on top of
// core.DefaultConfig. Without an explicit path a missing file is not an error.
func loadConfig(path string) (core.Config, error) {
	v := viper.New()
	d := core.DefaultConfig()
	v.SetDefault("index_name", d.IndexName)
	v.SetDefault("boundary_markers", d.BoundaryMarkers)
	v.SetDefault("list_marker", d.ListMarker)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("history.enabled", d.History.Enabled)

	v.SetEnvPrefix("MDTOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mdtoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return core.Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	var cfg core.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return core.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return core.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printYAML(a.stdout, a.cfg)
		},
	}
}
