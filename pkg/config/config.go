package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

type Config struct {
	// Storage
	Storage struct {
		Driver string `toml:"driver" validate:"oneof=postgres sqlite memory"`
		URL    string `toml:"url" validate:"required_unless=Driver memory"`
	} `toml:"storage"`

	// API
	API struct {
		Port int    `toml:"port" validate:"min=1,max=65535"`
		Host string `toml:"host"`
	} `toml:"api"`

	// CLI
	CLI struct {
		BaseURL string `toml:"base_url" validate:"omitempty,url"` // Base URL of the API server
		APIKey  string `toml:"api_key"`
	} `toml:"cli"`

	// Icons
	Icons struct {
		FaviconURL   string `toml:"favicon_url" validate:"required,contains={host}"` // favicon service, {host} is replaced
		Proxy        bool   `toml:"proxy"`                                           // serve remote favicons through /icons/favicon/:host
		Discover     bool   `toml:"discover"`                                        // proxy falls back to <link rel=icon> discovery
		FetchTimeout int    `toml:"fetch_timeout" validate:"min=1,max=60"`           // proxy fetch timeout in seconds
	} `toml:"icons"`

	// Shortcuts
	Shortcuts struct {
		PresetsFile string `toml:"presets_file"` // YAML preset table; empty uses the built-in one
	} `toml:"shortcuts"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.URL = "~/.config/newtab/newtab.db"
	cfg.API.Port = 8080
	cfg.API.Host = "0.0.0.0"
	cfg.CLI.BaseURL = "http://localhost:8080"
	cfg.CLI.APIKey = ""
	cfg.Icons.FaviconURL = "https://s2.googleusercontent.com/s2/favicons?domain_url=https://{host}&sz=256"
	cfg.Icons.Proxy = false
	cfg.Icons.Discover = false
	cfg.Icons.FetchTimeout = 5
	return cfg
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	if p := os.Getenv("NEWTAB_CONFIG"); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "newtab")
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads configuration from ~/.config/newtab/config.toml
// Creates the file with defaults if it doesn't exist
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(afero.NewOsFs(), configPath)
}

// LoadFrom reads configuration from path on fs, creating it with defaults
// if it doesn't exist
func LoadFrom(fs afero.Fs, configPath string) (*Config, error) {
	configPath, err := expandHome(configPath)
	if err != nil {
		return nil, err
	}

	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		cfg := DefaultConfig()
		applyEnv(cfg)

		if err := SaveTo(fs, configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, cfg.Validate()
	}

	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge with defaults for any missing values
	defaultCfg := DefaultConfig()
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = defaultCfg.Storage.Driver
	}
	if cfg.Storage.URL == "" && cfg.Storage.Driver == defaultCfg.Storage.Driver {
		cfg.Storage.URL = defaultCfg.Storage.URL
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = defaultCfg.API.Port
	}
	if cfg.API.Host == "" {
		cfg.API.Host = defaultCfg.API.Host
	}
	if cfg.CLI.BaseURL == "" {
		cfg.CLI.BaseURL = defaultCfg.CLI.BaseURL
	}
	if cfg.Icons.FaviconURL == "" {
		cfg.Icons.FaviconURL = defaultCfg.Icons.FaviconURL
	}
	if cfg.Icons.FetchTimeout == 0 {
		cfg.Icons.FetchTimeout = defaultCfg.Icons.FetchTimeout
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Override with environment variables if set (useful for Docker)
func applyEnv(cfg *Config) {
	if driver := os.Getenv("NEWTAB_STORAGE_DRIVER"); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Storage.URL = dbURL
	}
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		cfg.CLI.BaseURL = baseURL
	}
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(afero.NewOsFs(), configPath, cfg)
}

// SaveTo writes the configuration to path on fs
func SaveTo(fs afero.Fs, configPath string, cfg *Config) error {
	configPath, err := expandHome(configPath)
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := fs.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Expand ~ in path if needed
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return strings.Replace(path, "~", homeDir, 1), nil
}
