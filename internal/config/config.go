package config

import (
	"errors"
	"fmt"
	"strings"

	libconfig "chargerate/libs/config"
)

// Config defines rate service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"RATE_HTTP_PORT"`
	} `yaml:"http"`
	Redis struct {
		Addr     string `yaml:"addr" env:"RATE_REDIS_ADDR"`
		Password string `yaml:"password" env:"RATE_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Exchange struct {
		BaseURL string `yaml:"base_url" env:"RATE_EXCHANGE_BASE_URL"`
	} `yaml:"exchange"`
	Auth struct {
		APIKeySecret string `yaml:"api_key_secret" env:"API_KEY_SECRET"`
	} `yaml:"auth"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Exchange.BaseURL = "https://api.exchangerate.host"

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Auth.APIKeySecret) == "" {
		return nil, errors.New("config: api key secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
