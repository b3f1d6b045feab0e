package client

import (
	"fmt"
	"net/http"

	"newtab-go/pkg/models"
)

// CreateProfile registers a new profile and returns it with its API key
func (c *Client) CreateProfile(name string) (*models.Profile, error) {
	var profile models.Profile
	payload := models.ProfileCreate{Name: name}
	if err := c.do(http.MethodPost, "/api/v1/profiles", payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to register profile: %w", err)
	}
	return &profile, nil
}

// GetCurrentProfile returns the profile owning the client's API key
func (c *Client) GetCurrentProfile() (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(http.MethodGet, "/api/v1/profiles/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
