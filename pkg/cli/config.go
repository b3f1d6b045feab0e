package cli

import (
	"fmt"
	"strconv"
	"strings"

	"newtab-go/pkg/config"

	"github.com/pelletier/go-toml/v2"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

// SetConfig sets a configuration value and saves the file
// Format: section.key=value (e.g., "storage.url=postgres://...")
func (a *App) SetConfig(setStr string) error {
	if err := applySetting(a.cfg, setStr); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	return a.save(a.cfg)
}

func applySetting(cfg *config.Config, setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	keyPath := strings.Split(parts[0], ".")
	value := parts[1]

	if len(keyPath) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section := keyPath[0]
	key := keyPath[1]

	switch section {
	case "storage":
		switch key {
		case "driver":
			cfg.Storage.Driver = value
		case "url":
			cfg.Storage.URL = value
		default:
			return fmt.Errorf("unknown storage key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			cfg.API.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid port value: %s", value)
			}
			cfg.API.Port = port
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	case "cli":
		switch key {
		case "base_url":
			cfg.CLI.BaseURL = value
		case "api_key":
			cfg.CLI.APIKey = value
		default:
			return fmt.Errorf("unknown cli key: %s", key)
		}
	case "icons":
		switch key {
		case "favicon_url":
			cfg.Icons.FaviconURL = value
		case "proxy", "discover":
			on, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid %s value: %s", key, value)
			}
			if key == "proxy" {
				cfg.Icons.Proxy = on
			} else {
				cfg.Icons.Discover = on
			}
		case "fetch_timeout":
			timeout, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid fetch_timeout value: %s", value)
			}
			cfg.Icons.FetchTimeout = timeout
		default:
			return fmt.Errorf("unknown icons key: %s", key)
		}
	case "shortcuts":
		switch key {
		case "presets_file":
			cfg.Shortcuts.PresetsFile = value
		default:
			return fmt.Errorf("unknown shortcuts key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return nil
}
