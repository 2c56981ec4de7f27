package plugin

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fx/dsp/dither"
)

// Option configures an [Instance].
type Option func(*instanceConfig) error

type instanceConfig struct {
	source dither.Source
	logger *logrus.Logger
}

func defaultInstanceConfig() instanceConfig {
	return instanceConfig{logger: logrus.StandardLogger()}
}

// WithSource sets the random source used to seed the dither generators
// on every Activate. The default is a fresh entropy-seeded PCG per
// instance. Tests pass dither.NewSeededSource for reproducible output.
func WithSource(src dither.Source) Option {
	return func(cfg *instanceConfig) error {
		if src == nil {
			return errors.New("plugin: nil dither source")
		}

		cfg.source = src

		return nil
	}
}

// WithLogger sets the logger for lifecycle events. The default is
// logrus.StandardLogger().
func WithLogger(logger *logrus.Logger) Option {
	return func(cfg *instanceConfig) error {
		if logger == nil {
			return errors.New("plugin: nil logger")
		}

		cfg.logger = logger

		return nil
	}
}
