package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"local"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	SentryDSN string `envconfig:"SENTRY_DSN"`

	Events struct {
		Verbose            bool     `envconfig:"VERBOSE" default:"false"`
		TolerateExceptions bool     `envconfig:"TOLERATE_EXCEPTIONS" default:"false"`
		Output             string   `envconfig:"OUTPUT" default:"stderr"`
		Initial            []string `envconfig:"INITIAL"`
	} `envconfig:"EVENTS"`
}

// LoadConfig reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}

	return &cfg, nil
}
