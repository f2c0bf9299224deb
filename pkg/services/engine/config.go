package engine

import (
	"fmt"
	"os"

	"github.com/echolon-ai/echolon/pkg/services/scenario"
	"github.com/echolon-ai/echolon/pkg/services/schema"
	"github.com/spf13/viper"
)

// Config tunes the whole analysis pipeline. Every knob has a default;
// hosts override them from a YAML file.
type Config struct {
	Schema   schema.Config   `mapstructure:"schema"`
	Scenario scenario.Config `mapstructure:"scenario"`

	// Industry selects the benchmark profile.
	Industry string `mapstructure:"industry"`
	// BenchmarksPath points at the ini benchmark file; empty means the
	// bundled defaults.
	BenchmarksPath string `mapstructure:"benchmarks_path"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Schema:   schema.DefaultConfig(),
		Scenario: scenario.DefaultConfig(),
		Industry: "general",
	}
}

// LoadConfig reads the tuning file at path; a missing file yields the
// defaults so the engine runs with zero configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return &cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	return &cfg, nil
}
