package handlers

import (
	"log"
	"net/http"

	"newtab-go/pkg/icons"
	"newtab-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// Favicon proxies the favicon of a host. Any failure redirects to the
// offline placeholder, the same icon the page falls back to. Responses are
// raster images only and are locked down so nothing in them can run on
// this origin.
func Favicon(service *services.FaviconService) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Param("host")

		img, err := service.Icon(c.Request.Context(), host)
		if err != nil {
			log.Printf("favicon for %s: %v", host, err)
			c.Redirect(http.StatusFound, icons.OfflineIconPath)
			return
		}

		c.Header("Cache-Control", "private, max-age=86400")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'none'; sandbox")
		c.Data(http.StatusOK, img.ContentType, img.Data)
	}
}
