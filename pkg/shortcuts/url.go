package shortcuts

import (
	"net/url"
	"strings"
)

// NormalizeURL prepends https:// unless the URL already carries an http
// or https scheme. Blank input stays blank.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return s
	}
	return "https://" + s
}

// StripScheme removes a leading http:// or https:// and a trailing slash.
func StripScheme(raw string) string {
	s := strings.TrimPrefix(raw, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimSuffix(s, "/")
}

// Hostname returns the host of a (possibly scheme-less) shortcut URL, or
// "" when it cannot be parsed.
func Hostname(raw string) string {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
