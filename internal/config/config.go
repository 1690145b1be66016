package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	BotToken   string
	LogLevel   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
}

// LoadConfig resolves configuration from the environment, reading a .env
// file first if one is present. Missing required values are an error: the
// process must not start without them.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, errors.New("TELEGRAM_TOKEN is required")
	}

	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing DB_PORT")
	}

	cfg := &Config{
		BotToken:   token,
		LogLevel:   os.Getenv("LOG_LEVEL"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USERNAME"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_DATABASE"),
	}

	for _, v := range []struct{ name, value string }{
		{"DB_HOST", cfg.DBHost},
		{"DB_USERNAME", cfg.DBUser},
		{"DB_PASSWORD", cfg.DBPassword},
		{"DB_DATABASE", cfg.DBName},
	} {
		if v.value == "" {
			return nil, errors.Errorf("%s is required", v.name)
		}
	}

	return cfg, nil
}

// DatabaseURL builds the postgres connection string used by both the pool
// and the migrator.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
