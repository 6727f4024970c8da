// Package config loads the harness configuration: paths to the external
// measurement and archive tools, the default execution timeout, and the
// tracing endpoint.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the harness.
type Config struct {
	// TimeCommand is the measurement utility invocation prepended to
	// measured commands (program path plus flags).
	TimeCommand []string

	// ArTool is the archive inspection binary.
	ArTool string

	// ExtractTool is the Mach-O extractor binary.
	ExtractTool string

	// DefaultTimeout bounds executions that do not set their own timeout.
	// Zero disables the bound.
	DefaultTimeout time.Duration

	// OTELEndpoint is the OTLP gRPC collector address. Empty disables tracing.
	OTELEndpoint string
}

// Load reads configuration from the given yaml file (optional) and from
// DECPIPE_* environment variables, which take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("time_command", []string{"/usr/bin/time", "-v"})
	v.SetDefault("ar_tool", "ar-extractor")
	v.SetDefault("extract_tool", "macho-extractor")
	v.SetDefault("default_timeout", "0s")
	v.SetDefault("otel_endpoint", "")

	v.SetEnvPrefix("DECPIPE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		// A decpipe.yaml in the working directory is picked up when present.
		v.SetConfigName("decpipe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig()
	}

	timeout, err := time.ParseDuration(v.GetString("default_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid default_timeout: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("default_timeout must not be negative")
	}

	cfg := &Config{
		TimeCommand:    v.GetStringSlice("time_command"),
		ArTool:         v.GetString("ar_tool"),
		ExtractTool:    v.GetString("extract_tool"),
		DefaultTimeout: timeout,
		OTELEndpoint:   v.GetString("otel_endpoint"),
	}

	if cfg.ArTool == "" {
		return nil, fmt.Errorf("ar_tool is required (env: DECPIPE_AR_TOOL)")
	}
	if cfg.ExtractTool == "" {
		return nil, fmt.Errorf("extract_tool is required (env: DECPIPE_EXTRACT_TOOL)")
	}

	return cfg, nil
}
