package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     int
	DataFile string
	LogLevel string
}

// fileConfig is the optional YAML layer. Environment variables override
// any value set here.
type fileConfig struct {
	Port     int    `yaml:"port"`
	DataFile string `yaml:"data_file"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfigFile is consulted when TASKLINE_CONFIG is unset.
const DefaultConfigFile = "taskline.yaml"

// Load builds the configuration: defaults, then the YAML file when one
// exists, then environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     8080,
		DataFile: "tasks.txt",
		LogLevel: "info",
	}

	if err := cfg.applyFile(); err != nil {
		return nil, err
	}

	cfg.Port = envInt("PORT", cfg.Port)
	cfg.DataFile = envStr("TASKS_FILE", cfg.DataFile)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyFile() error {
	path := os.Getenv("TASKLINE_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != 0 {
		c.Port = fc.Port
	}
	if fc.DataFile != "" {
		c.DataFile = fc.DataFile
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DataFile == "" {
		return fmt.Errorf("TASKS_FILE must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
