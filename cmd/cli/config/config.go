package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultAPIURL = "http://localhost:8080"

// Config is the CLI configuration stored in ~/.habits/config.yaml.
type Config struct {
	APIURL string `yaml:"api_url"`
	Token  string `yaml:"token"`
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".habits", "config.yaml"), nil
}

// Load reads the config file. A missing file yields a zero config.
func Load() (Config, error) {
	var cfg Config
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config file, creating ~/.habits if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// APIURL returns the base URL for the Daily Habits API.
// The HABITS_API_URL environment variable overrides the config file.
func APIURL() string {
	if v := os.Getenv("HABITS_API_URL"); v != "" {
		return v
	}
	if cfg, err := Load(); err == nil && cfg.APIURL != "" {
		return cfg.APIURL
	}
	return defaultAPIURL
}

// SaveToken stores the JWT in the config file.
func SaveToken(token string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Token = token
	return Save(cfg)
}

// ReadToken returns the stored JWT, or an error when not logged in.
func ReadToken() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	if cfg.Token == "" {
		return "", os.ErrNotExist
	}
	return cfg.Token, nil
}

// ClearToken removes the stored JWT.
func ClearToken() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Token = ""
	return Save(cfg)
}
