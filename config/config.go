package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every variable read by Load.
const EnvPrefix = "HOLDINGS_"

type Config struct {
	Port        string `koanf:"port" validate:"required,numeric"`
	Env         string `koanf:"env" validate:"required,oneof=development production test"`
	DBPath      string `koanf:"db_path" validate:"required"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn error"`
	CORSOrigins string `koanf:"cors_origins"`
}

var AppConfig *Config

func defaults() map[string]any {
	return map[string]any{
		"port":         "3000",
		"env":          "development",
		"db_path":      "./data/holdings.db",
		"log_level":    "info",
		"cors_origins": "*",
	}
}

// Load reads .env when present, then HOLDINGS_* variables, and validates the result.
func Load() error {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// Parse builds a Config from the process environment on top of the defaults.
func Parse() (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	// HOLDINGS_DB_PATH -> db_path
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
