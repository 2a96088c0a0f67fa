// Package config handles scenexport configuration loading and management.
package config

import (
	"errors"
	"fmt"
	stdmath "math"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Output formats.
const (
	FormatFBX  = "fbx"
	FormatYAML = "yaml"
)

// Config holds all export settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds conversion and output settings.
type ExportConfig struct {
	ScaleFactor        float64 `yaml:"scale_factor"`        // applied to mesh positions
	Format             string  `yaml:"format"`              // fbx or yaml
	Creator            string  `yaml:"creator"`             // written into the file header
	IncludeDescendants bool    `yaml:"include_descendants"` // flatten object children into the export list
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			ScaleFactor:        100,
			Format:             FormatFBX,
			Creator:            "scenexport",
			IncludeDescendants: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values a file or flag may have set badly.
func (c *Config) Validate() error {
	s := c.Export.ScaleFactor
	if s <= 0 || stdmath.IsInf(s, 0) || stdmath.IsNaN(s) {
		return fmt.Errorf("%w: export.scale_factor must be a positive number, got %v", ErrInvalidConfig, s)
	}
	switch c.Export.Format {
	case FormatFBX, FormatYAML:
	default:
		return fmt.Errorf("%w: export.format must be %q or %q, got %q", ErrInvalidConfig, FormatFBX, FormatYAML, c.Export.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
