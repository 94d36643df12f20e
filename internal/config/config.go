package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Auth      AuthConfig      `yaml:"auth"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env:"HTTP_PORT"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Database string `yaml:"database" env:"DB_NAME"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host" env:"RABBITMQ_HOST"`
	Port     int    `yaml:"port" env:"RABBITMQ_PORT"`
	User     string `yaml:"user" env:"RABBITMQ_USER"`
	Password string `yaml:"password" env:"RABBITMQ_PASSWORD"`
}

type GeocodingConfig struct {
	BaseURL  string `yaml:"base_url" env:"GEOCODING_BASE_URL"`
	Language string `yaml:"language" env:"GEOCODING_LANGUAGE"`
	// APIKey comes from the environment only. An empty key degrades
	// geocoding to "always null" instead of failing requests.
	APIKey string `yaml:"-" env:"GEOCODING_API_KEY"`
	// ThrottleMillis is the fixed pause between provider calls in the
	// backfill loop.
	ThrottleMillis int `yaml:"throttle_millis" env:"GEOCODING_THROTTLE_MILLIS"`
}

type AuthConfig struct {
	TokenSecret string `yaml:"-" env:"AUTH_TOKEN_SECRET"`
}

// Load reads the YAML config file and applies environment overrides on top.
// A .env file in the working directory is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if cfg.Geocoding.Language == "" {
		cfg.Geocoding.Language = "pt-BR"
	}
	if cfg.Geocoding.ThrottleMillis == 0 {
		cfg.Geocoding.ThrottleMillis = 200
	}
}
