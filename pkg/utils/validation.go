package utils

import (
	"fmt"
	"net/url"
	"strings"

	"newtab-go/pkg/shortcuts"
)

// ValidateURL trims and validates a shortcut URL, returning it with a
// scheme. A blank URL is valid: the shortcut falls back to its preset or
// placeholder URL.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if strings.ContainsAny(s, " \t\n") {
		return "", fmt.Errorf("invalid URL: contains whitespace")
	}

	normalized := shortcuts.NormalizeURL(s)
	u, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL: missing host")
	}
	return normalized, nil
}
