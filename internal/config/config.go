package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the Mimic application configuration
type Config struct {
	AppDir     string
	DBPath     string
	ConfigPath string

	// ExtraNoticePatterns are appended to the parser's built-in
	// system-notice filter list.
	ExtraNoticePatterns []string
}

// fileConfig is the subset of Config read from config.yaml
type fileConfig struct {
	DBPath              string   `yaml:"db_path"`
	ExtraNoticePatterns []string `yaml:"extra_notice_patterns"`
}

// GetAppDir returns the Mimic application directory for the current OS
func GetAppDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Mimic")
	case "linux":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "mimic")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Mimic")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".mimic")
	}
}

// Load returns a Config with values layered as: defaults, then config.yaml
// if present, then environment overrides.
func Load() (*Config, error) {
	appDir := GetAppDir()

	cfg := &Config{
		AppDir:     appDir,
		DBPath:     filepath.Join(appDir, "mimic.db"),
		ConfigPath: getEnv("MIMIC_CONFIG_PATH", filepath.Join(appDir, "config.yaml")),
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if dbPath := os.Getenv("MIMIC_DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	return cfg, nil
}

// loadFile merges config.yaml into cfg. A missing file is fine; a file
// that exists but does not parse is an error.
func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", c.ConfigPath, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", c.ConfigPath, err)
	}

	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	c.ExtraNoticePatterns = fc.ExtraNoticePatterns

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
