// Package config loads server configuration from an optional YAML file.
// Command-line flags override file values; see cmd/server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
}

// ServerConfig contains HTTP listener parameters.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DBConfig contains storage parameters.
type DBConfig struct {
	// Path is the SQLite database path. ":memory:" is accepted.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		DB:     DBConfig{Path: "ledger.db"},
	}
}

// Load reads a YAML config file over the defaults. Fields missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
