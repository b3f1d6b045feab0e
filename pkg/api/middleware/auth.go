package middleware

import (
	"context"
	"net/http"
	"strings"

	"newtab-go/pkg/models"

	"github.com/gin-gonic/gin"
)

const (
	// KeyCookie holds the API key of the browser's profile
	KeyCookie = "newtab_key"

	keyCookieMaxAge = 400 * 24 * 60 * 60
)

// Authenticator resolves an API key to its profile
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*models.Profile, error)
}

// RequireAuth rejects requests without a valid API key
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := apiKeyFrom(c)
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			c.Abort()
			return
		}

		profile, err := auth.Authenticate(c.Request.Context(), apiKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}

		setProfile(c, profile)
		c.Next()
	}
}

// LoadProfile attaches the profile when the request carries a valid key
// but lets anonymous requests through. A key passed as ?key= is stored in
// the profile cookie so later page loads don't need it.
func LoadProfile(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := apiKeyFrom(c)
		if apiKey != "" {
			if profile, err := auth.Authenticate(c.Request.Context(), apiKey); err == nil {
				setProfile(c, profile)
				if c.Query("key") != "" {
					SetKeyCookie(c, apiKey)
				}
			}
		}
		c.Next()
	}
}

// RequirePage redirects anonymous page requests to the start page
func RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("profile"); !ok {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetKeyCookie remembers apiKey in the browser
func SetKeyCookie(c *gin.Context, apiKey string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(KeyCookie, apiKey, keyCookieMaxAge, "/", "", false, true)
}

// apiKeyFrom reads the key from "Bearer <key>" (or just "<key>"), then the
// key query parameter, then the profile cookie.
func apiKeyFrom(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if key := c.Query("key"); key != "" {
		return strings.TrimSpace(key)
	}
	if key, err := c.Cookie(KeyCookie); err == nil {
		return strings.TrimSpace(key)
	}
	return ""
}

func setProfile(c *gin.Context, profile *models.Profile) {
	c.Set("profileID", profile.ID)
	c.Set("profile", profile)
}
