package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const insecureDevSecret = "supersecretkey"

type Config struct {
	Addr           string         `yaml:"addr" validate:"required"`
	APITimeout     time.Duration  `yaml:"timeout" validate:"gt=0"`
	LogLevel       string         `yaml:"log_level" validate:"oneof=debug info warn error"`
	Database       DatabaseConfig `yaml:"database"`
	MigrateOnStart bool           `yaml:"migrate_on_start"`
	SeedOnStart    bool           `yaml:"seed_on_start"`
	Auth           AuthConfig     `yaml:"auth"`
	Metrics        MetricsConfig  `yaml:"metrics"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// AuthConfig enables bearer-token protection of the question write
// endpoints when JWTSecret is non-empty.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoadConfig builds the configuration from defaults, a .env file in the
// working directory, TRIVIA_* environment variables and finally the YAML
// file at path, when path is not empty.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Addr:       getEnv("TRIVIA_ADDR", ":8080"),
		APITimeout: 15 * time.Second,
		LogLevel:   getEnv("TRIVIA_LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver: getEnv("TRIVIA_DB_DRIVER", "sqlite"),
			DSN:    getEnv("TRIVIA_DB_DSN", "trivia.db"),
		},
		MigrateOnStart: true,
		Auth:           AuthConfig{JWTSecret: os.Getenv("TRIVIA_JWT_SECRET")},
		Metrics:        MetricsConfig{Enabled: true},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks field constraints and refuses the well-known development
// JWT secret outside TRIVIA_ENV=development.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Auth.JWTSecret == insecureDevSecret && os.Getenv("TRIVIA_ENV") != "development" {
		return fmt.Errorf("invalid config: auth.jwt_secret uses the insecure development default")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
