// Package config loads server configuration from defaults, an optional
// YAML file, and DOCVIEW_* environment variables, in increasing order of
// precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config captures the static configuration of the DocView server.
type Config struct {
	// Logging controls log output behavior. Logs always go to stderr;
	// stdout is reserved for the MCP protocol.
	Logging LoggingConfig `mapstructure:"logging"`

	// DefaultChunkSize is the chunk size, in characters, used when a
	// caller does not choose one.
	DefaultChunkSize int `mapstructure:"default_chunk_size" validate:"required,gt=0"`

	// HTTP configures the optional REST transport.
	HTTP HTTPConfig `mapstructure:"http"`

	// Loader tunes client-side progressive loading defaults.
	Loader LoaderConfig `mapstructure:"loader"`

	// Viewport tunes client-side render window defaults.
	Viewport ViewportConfig `mapstructure:"viewport"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// HTTPConfig configures the REST listener.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// LoaderConfig tunes the progressive loader.
type LoaderConfig struct {
	// Threshold is the fraction of scrolled content past which the next
	// chunk is requested.
	Threshold float64 `mapstructure:"threshold" validate:"gt=0,lte=1"`
}

// ViewportConfig tunes the virtualized renderer.
type ViewportConfig struct {
	VisibleLines int `mapstructure:"visible_lines" validate:"gt=0"`
	MarginLines  int `mapstructure:"margin_lines"  validate:"gte=0"`
}

// Load reads configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("default_chunk_size", 10000)
	v.SetDefault("http.addr", "127.0.0.1:7333")
	v.SetDefault("loader.threshold", 0.8)
	v.SetDefault("viewport.visible_lines", 40)
	v.SetDefault("viewport.margin_lines", 10)

	v.SetEnvPrefix("DOCVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
