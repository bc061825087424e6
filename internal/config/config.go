// Package config loads server defaults from an optional TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the file named by
// EDGETONE_MCP_CONFIG, then the individual EDGETONE_MCP_* variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables read by Load.
const (
	EnvConfigFile = "EDGETONE_MCP_CONFIG"
	EnvLogLevel   = "EDGETONE_MCP_LOG_LEVEL"
	EnvMaxKernel  = "EDGETONE_MCP_MAX_KERNEL"
	EnvThreshold  = "EDGETONE_MCP_THRESHOLD"
	EnvWorkers    = "EDGETONE_MCP_WORKERS"
)

// Config holds defaults applied when a tool call omits a parameter.
type Config struct {
	LogLevel string `toml:"log_level"`

	Edges EdgeConfig `toml:"edges"`
	Tone  ToneConfig `toml:"tone"`
}

// EdgeConfig holds multi-scale edge detection defaults.
type EdgeConfig struct {
	MaxKernelSize int     `toml:"max_kernel_size"`
	Threshold     float64 `toml:"threshold"`
	// Workers bounds concurrent scales; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
}

// ToneConfig holds contrast analysis defaults.
type ToneConfig struct {
	Percentages []float64 `toml:"percentages"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Edges: EdgeConfig{
			MaxKernelSize: 13,
			Threshold:     0.1,
		},
		Tone: ToneConfig{
			Percentages: []float64{5, 10, 15},
		},
	}
}

// Load builds the configuration from defaults, the optional config file and
// environment overrides, then validates it.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv(EnvMaxKernel); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvMaxKernel, err)
		}
		cfg.Edges.MaxKernelSize = n
	}
	if v := getenv(EnvThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvThreshold, err)
		}
		cfg.Edges.Threshold = f
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		cfg.Edges.Workers = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Edges.MaxKernelSize < 3 || c.Edges.MaxKernelSize%2 == 0 {
		return fmt.Errorf("max kernel size %d must be odd and >= 3", c.Edges.MaxKernelSize)
	}
	if c.Edges.Threshold < 0 {
		return fmt.Errorf("threshold %v must not be negative", c.Edges.Threshold)
	}
	if c.Edges.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative", c.Edges.Workers)
	}
	for _, p := range c.Tone.Percentages {
		if p < 0 || p > 100 {
			return fmt.Errorf("percentage %v outside [0,100]", p)
		}
	}
	return nil
}
