package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BADGER_DIR keeps the database after the run; a temporary directory is used when empty
	BadgerDir string `envconfig:"E2E_BADGER_DIR"`
	// E2E_COLOURS enables colorized step headers for better log readability
	Colours  bool   `envconfig:"E2E_COLOURS" default:"true"`
	LogLevel string `envconfig:"E2E_LOG_LEVEL" default:"ERROR"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
