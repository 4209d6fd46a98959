package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds the server settings. Each field can come from the YAML file
// or from the environment variable named in its env tag.
type Config struct {
	Port              string `yaml:"port" env:"PORT" env-default:"8080"`
	LogLevel          string `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	StorageBackend    string `yaml:"storage_backend" env:"STORAGE_BACKEND" env-default:"sqlite"`
	StorageKey        string `yaml:"storage_key" env:"STORAGE_KEY" env-default:"tasks"`
	DBPath            string `yaml:"db_path" env:"DB_PATH" env-default:"./data/simpletodo.db"`
	RedisAddr         string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPrefix       string `yaml:"redis_prefix" env:"REDIS_PREFIX" env-default:"simpletodo:"`
	StrictPersistence bool   `yaml:"strict_persistence" env:"STRICT_PERSISTENCE" env-default:"false"`
}

// Load reads configPath if it exists and the environment otherwise.
// Environment variables override values from the file.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
		return cfg, cfg.Validate()
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("cannot read config %q: %w", configPath, err)
		}
		// no file - env only
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("storage_backend must be %q, %q or %q, got %q",
			BackendSQLite, BackendRedis, BackendMemory, c.StorageBackend)
	}

	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("log_level must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel)
	}

	return nil
}
