package models

import (
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// AppConfig type is used to describe application config.
type AppConfig struct {
	LogFormat string `env:"GENXDATA_LOG_FORMAT" json:"log_format" yaml:"log_format"`
	LogLevel  string `env:"GENXDATA_LOG_LEVEL"  json:"log_level"  yaml:"log_level"`
}

func (m *AppConfig) ParseFromFile(path string) error {
	if path != "" {
		err := DecodeFile(path, m)
		if err != nil {
			return errors.WithMessagef(err, "failed to parse app config file %q", path)
		}
	} else if err := cleanenv.ReadEnv(m); err != nil {
		return errors.WithMessage(err, "failed to read app config from environment")
	}

	err := m.PostProcess()
	if err != nil {
		return errors.WithMessagef(err, "failed to post process app config file %q", path)
	}

	return nil
}

func (m *AppConfig) PostProcess() error {
	m.FillDefaults()

	errs := m.Validate()
	if len(errs) != 0 {
		return errors.Errorf("failed to validate app config:\n%v", parseErrsToString(errs))
	}

	return nil
}

func (m *AppConfig) FillDefaults() {
	if m.LogFormat == "" {
		m.LogFormat = "text"
	}

	if m.LogLevel == "" {
		m.LogLevel = "info"
	}
}

func (m *AppConfig) Validate() []error {
	var errs []error

	if !slices.Contains([]string{"text", "json"}, m.LogFormat) {
		errs = append(errs, errors.Errorf("unknown log format: %s", m.LogFormat))
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, m.LogLevel) {
		errs = append(errs, errors.Errorf("unknown log level: %s", m.LogLevel))
	}

	return errs
}
