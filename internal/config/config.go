package config

import "github.com/kelseyhightower/envconfig"

// Config holds runtime configuration. Precedence: explicit env var > .env
// file (loaded by main) > default.
type Config struct {
	Addr      string `envconfig:"APP_ADDR" default:":8080"`
	Env       string `envconfig:"APP_ENV" default:"development"`
	DBPath    string `envconfig:"DB_PATH" default:"ledger.db"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool { return c != nil && c.Env == "production" }
