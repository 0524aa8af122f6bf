package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

func LoadConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if config.Port <= 0 || config.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", config.Port)
	}

	if config.StoragePath == "" {
		return Config{}, fmt.Errorf("STORAGE_PATH must not be empty")
	}

	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return config, nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Level falls back to info for configs that did not come through LoadConfig.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return level
}
