package api

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"newtab-go/pkg/api/handlers"
	"newtab-go/pkg/api/middleware"
	"newtab-go/pkg/config"
	"newtab-go/pkg/favicon"
	"newtab-go/pkg/icons"
	"newtab-go/pkg/services"
	"newtab-go/pkg/shortcuts"
	"newtab-go/pkg/storage"

	"github.com/gin-gonic/gin"
)

//go:embed web/templates/*.tmpl web/static
var webFS embed.FS

const faviconProxyPath = "/icons/favicon/"

func NewRouter(backend storage.Backend, cfg *config.Config, presets []shortcuts.Preset) *gin.Engine {
	router := gin.New()

	// Initialize services
	iconOpts := icons.Options{FaviconURL: cfg.Icons.FaviconURL}
	if cfg.Icons.Proxy {
		iconOpts.ProxyPath = faviconProxyPath
	}
	shortcutService := services.NewShortcutService(backend, presets, iconOpts)

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Templates and static assets
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"svg": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(webFS, "web/templates/*.tmpl")))
	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(static))

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Page routes
	page := router.Group("/")
	page.Use(middleware.LoadProfile(shortcutService))
	{
		page.GET("", handlers.Page(shortcutService))
		page.POST("/profiles", handlers.RegisterBrowser(shortcutService))

		forms := page.Group("")
		forms.Use(middleware.RequirePage())
		{
			forms.POST("/shortcuts", handlers.PageCreateShortcut(shortcutService))
			forms.POST("/shortcuts/reset", handlers.PageResetShortcuts(shortcutService))
			forms.POST("/shortcuts/:index", handlers.PageCommitShortcut(shortcutService))
			forms.POST("/shortcuts/:index/delete", handlers.PageDeleteShortcut(shortcutService))
			forms.POST("/preferences", handlers.PageUpdatePreferences(shortcutService))
		}

		// Favicon proxy, for browsers with a profile only
		if cfg.Icons.Proxy {
			client := favicon.NewClient(cfg.Icons.FaviconURL, time.Duration(cfg.Icons.FetchTimeout)*time.Second)
			faviconService := services.NewFaviconService(client, cfg.Icons.Discover)
			page.GET(faviconProxyPath+":host", middleware.RequirePage(), handlers.Favicon(faviconService))
		}
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Shortcuts
		sc := v1.Group("/shortcuts")
		sc.Use(middleware.RequireAuth(shortcutService))
		{
			sc.GET("", handlers.ListShortcuts(shortcutService))
			sc.POST("", handlers.CreateShortcut(shortcutService))
			sc.POST("/reset", handlers.ResetShortcuts(shortcutService))
			sc.PUT("/:index", handlers.UpdateShortcut(shortcutService))
			sc.DELETE("/:index", handlers.DeleteShortcut(shortcutService))
			sc.GET("/:index/icon", handlers.GetShortcutIcon(shortcutService))
		}

		// Preferences
		prefs := v1.Group("/preferences")
		prefs.Use(middleware.RequireAuth(shortcutService))
		{
			prefs.GET("", handlers.GetPreferences(shortcutService))
			prefs.PUT("", handlers.UpdatePreferences(shortcutService))
		}

		// Profiles
		profiles := v1.Group("/profiles")
		{
			profiles.POST("", handlers.CreateProfile(shortcutService))
			profiles.GET("/me", middleware.RequireAuth(shortcutService), handlers.GetCurrentProfile)
		}
	}

	return router
}
