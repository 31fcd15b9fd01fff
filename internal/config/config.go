package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"

	// DefaultDateLayout renders like an en-US locale date+time string.
	DefaultDateLayout = "1/2/2006, 3:04:05 PM"
	DefaultStorageKey = "todos"
)

// Config holds the unified application configuration
type Config struct {
	DataDir    string `json:"data_dir"`
	Backend    string `json:"backend"`
	StorageKey string `json:"storage_key"`
	DateLayout string `json:"date_layout"`
	Glamour    string `json:"glamour_style"`
}

// Settings represents the config file structure
type Settings struct {
	DataDir    string `json:"data_dir,omitempty"`
	Backend    string `json:"backend,omitempty"`
	StorageKey string `json:"storage_key,omitempty"`
	DateLayout string `json:"date_layout,omitempty"`
	Glamour    string `json:"glamour_style,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir   string
	Backend   string
	Ephemeral bool
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend:    BackendFile,
		StorageKey: DefaultStorageKey,
		DateLayout: DefaultDateLayout,
		Glamour:    "dark",
	}

	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.Backend != "" {
				cfg.Backend = fileConfig.Backend
			}
			if fileConfig.StorageKey != "" {
				cfg.StorageKey = fileConfig.StorageKey
			}
			if fileConfig.DateLayout != "" {
				cfg.DateLayout = fileConfig.DateLayout
			}
			if fileConfig.Glamour != "" {
				cfg.Glamour = fileConfig.Glamour
			}
		}
	}

	// Environment variables override config file
	if envDir := os.Getenv("QUICKNOTES_DIR"); envDir != "" {
		cfg.DataDir = expandPath(envDir)
	}
	if envBackend := os.Getenv("QUICKNOTES_BACKEND"); envBackend != "" {
		cfg.Backend = envBackend
	}

	// CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.Backend != "" {
		cfg.Backend = flags.Backend
	}
	if flags.Ephemeral {
		cfg.Backend = BackendMemory
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := validateBackend(cfg.Backend); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}

	return cfg, nil
}

func validateBackend(b string) error {
	switch b {
	case BackendFile, BackendBadger, BackendMemory:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q (want %s or %s)", b, BackendFile, BackendBadger)
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "quicknotes"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "quicknotes", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// BadgerDir returns where the badger backend keeps its files
func (c *Config) BadgerDir() string {
	return filepath.Join(c.DataDir, "badger")
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	settings := Settings{
		DataDir:    defaultDir,
		Backend:    BackendFile,
		StorageKey: DefaultStorageKey,
		DateLayout: DefaultDateLayout,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
