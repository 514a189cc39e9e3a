package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the mdtoc.yaml configuration file.
type Config struct {
	IndexName       string        `mapstructure:"index_name" yaml:"index_name" json:"index_name"`
	BoundaryMarkers []string      `mapstructure:"boundary_markers" yaml:"boundary_markers" json:"boundary_markers"`
	ListMarker      string        `mapstructure:"list_marker" yaml:"list_marker" json:"list_marker"`
	Indent          string        `mapstructure:"indent" yaml:"indent" json:"indent"`
	History         HistoryConfig `mapstructure:"history" yaml:"history" json:"history"`
}

// HistoryConfig controls the lift history database.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		IndexName:       "README.md",
		BoundaryMarkers: []string{".git"},
		ListMarker:      "-",
		Indent:          "  ",
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.IndexName == "" {
		c.IndexName = d.IndexName
	}
	if c.BoundaryMarkers == nil {
		c.BoundaryMarkers = d.BoundaryMarkers
	}
	if c.ListMarker == "" {
		c.ListMarker = d.ListMarker
	}
	if c.Indent == "" {
		c.Indent = d.Indent
	}
	return c
}

// Validate checks that the config produces lists the locators can read back.
func (c Config) Validate() error {
	if strings.TrimSpace(c.IndexName) == "" {
		return fmt.Errorf("%w: index_name is empty", ErrInvalidConfig)
	}
	if len(c.ListMarker) != 1 || !isListMarker(c.ListMarker[0]) {
		return fmt.Errorf("%w: list_marker must be - or *, got %q", ErrInvalidConfig, c.ListMarker)
	}
	if c.Indent == "" || strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("%w: indent must be spaces or tabs, got %q", ErrInvalidConfig, c.Indent)
	}
	for _, m := range c.BoundaryMarkers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("%w: empty boundary marker", ErrInvalidConfig)
		}
	}
	return nil
}
