// Package config loads the toolbox CLI configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/plangrid/toolbox/internal/logging"
	"github.com/plangrid/toolbox/messages"
)

// Config is read from TOOLBOX_* environment variables.
type Config struct {
	Lang         string `env:"TOOLBOX_LANG" envDefault:"en"`         // message language
	LogLevel     string `env:"TOOLBOX_LOG_LEVEL" envDefault:"info"`  // debug, info, warn or error
	LogFormat    string `env:"TOOLBOX_LOG_FORMAT" envDefault:"text"` // text or json
	MessagesFile string `env:"TOOLBOX_MESSAGES_FILE"`                // optional YAML message catalog
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads the configuration from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Logger builds the logger described by c.
func (c Config) Logger() *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: logging.ParseFormat(c.LogFormat),
	})
}

// ApplyMessages installs the message translator: the YAML catalog when
// MessagesFile is set, the built-in dictionary for Lang otherwise.
func (c Config) ApplyMessages() error {
	if c.MessagesFile == "" {
		messages.SetLanguage(c.Lang)
		return nil
	}
	cat, err := messages.LoadYAMLFile(c.MessagesFile, c.Lang)
	if err != nil {
		return err
	}
	messages.SetTranslator(cat)
	return nil
}
