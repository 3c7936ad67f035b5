package settings

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/huynhanx03/go-bounded/pkg/common/validation"
)

// Default returns a configuration that passes Validate.
func Default() Config {
	return Config{
		Logger: Logger{
			LogLevel:   "info",
			MaxBackups: 3,
			MaxAge:     7,
			MaxSize:    50,
		},
		Bench: Bench{
			Workers:       4,
			QueueCapacity: 1024,
			HeapCapacity:  1024,
			Operations:    100_000,
			Rounds:        3,
			Seed:          1,
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config %q", path)
		}
		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "failed to parse config %q", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every `validate` tag in the tree.
func (c *Config) Validate() error {
	if ok, msg := validation.IsRequestValid(c); !ok {
		return errors.Errorf("invalid config: %s", msg)
	}
	return nil
}
