// Package config loads YAML configuration with environment variable
// expansion.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Validator interface {
	Validate() error
}

// Load reads filename into target, expanding ${VAR} references first. The
// target is validated when it implements Validator.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", filename)
	}

	expandedData := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expandedData), target); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", filename)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return errors.Wrap(err, "config validation failed")
		}
	}

	return nil
}

// LoadOrDefault leaves target untouched when filename is empty or missing.
func LoadOrDefault[T any](filename string, target *T) (bool, error) {
	if filename == "" {
		return false, nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return true, Load(filename, target)
}
