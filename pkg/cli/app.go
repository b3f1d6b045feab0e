package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"newtab-go/pkg/cli/client"
	"newtab-go/pkg/cli/logger"
	"newtab-go/pkg/cli/tui"
	"newtab-go/pkg/config"

	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	cfg    *config.Config
	client *client.Client
	out    io.Writer

	// persists config changes; config.Save outside tests
	save func(*config.Config) error
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:  cfg,
		out:  os.Stdout,
		save: config.Save,
	}
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}
	if a.cfg.CLI.APIKey == "" {
		return nil, fmt.Errorf("API key not configured (run with -register <name> first)")
	}

	a.client = client.NewClient(a.cfg.CLI.BaseURL, a.cfg.CLI.APIKey)
	return a.client, nil
}

// getClientForRegistration returns an HTTP client without API key (for registration)
func (a *App) getClientForRegistration() (*client.Client, error) {
	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}
	return client.NewClient(a.cfg.CLI.BaseURL, ""), nil
}

// Run starts the interactive TUI
func (a *App) Run() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	logger.Init(filepath.Join(os.TempDir(), "newtab"))
	defer logger.CloseLog()
	logger.Log("starting TUI against %s", a.cfg.CLI.BaseURL)

	p := tea.NewProgram(tui.NewRootModel(apiClient), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
