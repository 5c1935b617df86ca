package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig configures `tetris serve`. Every field can be set from a
// YAML file and overridden by the matching environment variable.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"TETRIS_SSH_ADDR" env-default:":23234"`
	HostKeyPath string        `yaml:"host-key" env:"TETRIS_HOST_KEY"`
	HistoryDSN  string        `yaml:"history" env:"TETRIS_HISTORY" env-default:"~/.tetris/history.db"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"TETRIS_IDLE_TIMEOUT" env-default:"30m"`
	LogLevel    string        `yaml:"log-level" env:"TETRIS_LOG_LEVEL" env-default:"info"`
}

// LoadServer reads the server configuration. With an empty path only the
// environment (and defaults) are consulted.
func LoadServer(path string) (ServerConfig, error) {
	var cfg ServerConfig

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return ServerConfig{}, fmt.Errorf("config: unable to load server config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("config: unable to read server environment: %w", err)
	}
	return cfg, nil
}
