package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched when LoadAppConfig is called without a path.
var DefaultPaths = []string{"lhconvert.yml", "config.yml"}

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() AppConfig {
	return AppConfig{
		Convert: ConvertConfig{
			Format:        "kml",
			Variable:      "locationJsonData",
			Separator:     ",",
			Title:         "Location History",
			ProgressEvery: 100000,
		},
		Track: TrackConfig{
			MaxGapMinutes: 10,
			MaxJumpKM:     40,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadAppConfig loads and validates the application configuration. An
// explicit path must exist; otherwise DefaultPaths are tried in order and the
// defaults are used when none exists.
func LoadAppConfig(paths ...string) (AppConfig, error) {
	required := len(paths) > 0
	if !required {
		paths = DefaultPaths
	}

	cfg := DefaultConfig()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) && !required {
			continue
		}
		if err != nil {
			return AppConfig{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parsing %s: %w", p, err)
		}
		break
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every section against its struct tags.
func (c AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
