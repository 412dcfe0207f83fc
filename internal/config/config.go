package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type Config struct {
	Token       string `env:"TOKEN"`
	Prefix      string `env:"COMMAND_PREFIX" envDefault:"!"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBFile      string `env:"DB_FILE" envDefault:"eventbot.db"`
	AdminRole   string `env:"ADMIN_ROLE" envDefault:"Admin"`
	Locale      string `env:"LOCALE" envDefault:"en"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment and validates it.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Override replaces the prefix and store location with non-empty command line
// values. A db value containing "://" or starting with "sqlite:" is used as a
// store URL, anything else as a SQLite file path.
func (c *Config) Override(prefix, db string) error {
	if prefix != "" {
		c.Prefix = prefix
	}
	if db != "" {
		if strings.Contains(db, "://") || strings.HasPrefix(db, "sqlite:") {
			c.DatabaseURL = db
		} else {
			c.DatabaseURL = ""
			c.DBFile = db
		}
	}
	return c.validate()
}

// RequireToken reports an error when no bot token is configured.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("config: TOKEN is required and cannot be empty")
	}
	return nil
}

// StoreURL returns DATABASE_URL, or a sqlite URL for DB_FILE when it is unset.
func (c *Config) StoreURL() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	return "sqlite:" + c.DBFile
}

func (c *Config) validate() error {
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, " \t\n") {
		return fmt.Errorf("config: COMMAND_PREFIX must be non-empty without spaces (%q)", c.Prefix)
	}

	if strings.TrimSpace(c.DatabaseURL) == "" && strings.TrimSpace(c.DBFile) == "" {
		return errors.New("config: one of DATABASE_URL or DB_FILE is required")
	}

	if strings.TrimSpace(c.AdminRole) == "" {
		return errors.New("config: ADMIN_ROLE cannot be empty")
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: invalid LOCALE (%q): %w", c.Locale, err)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid LOG_LEVEL (%q): %w", c.LogLevel, err)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be text or json (%q)", c.LogFormat)
	}

	return nil
}
