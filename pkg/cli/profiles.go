package cli

import (
	"fmt"

	"newtab-go/pkg/cli/client"
)

// RegisterProfile creates a new browser profile and saves its API key
func (a *App) RegisterProfile(name string) error {
	apiClient, err := a.getClientForRegistration()
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	profile, err := apiClient.CreateProfile(name)
	if err != nil {
		return fmt.Errorf("failed to register profile: %w", err)
	}

	a.cfg.CLI.APIKey = profile.APIKey
	if err := a.save(a.cfg); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	a.client = client.NewClient(a.cfg.CLI.BaseURL, profile.APIKey)

	fmt.Fprintln(a.out, "✓ Profile registered successfully!")
	fmt.Fprintf(a.out, "  Name: %s\n", profile.Name)
	fmt.Fprintf(a.out, "  Profile ID: %s\n", profile.ID.String())
	fmt.Fprintln(a.out, "  API key saved to config automatically")
	fmt.Fprintln(a.out, "\n⚠️  Open the new-tab page once with this key to bind the browser:")
	fmt.Fprintf(a.out, "  %s/?key=%s\n", a.cfg.CLI.BaseURL, profile.APIKey)

	return nil
}
