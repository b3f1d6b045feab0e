package handlers

import (
	"net/http"

	"newtab-go/pkg/models"
	"newtab-go/pkg/services"

	"github.com/gin-gonic/gin"
)

func CreateProfile(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProfileCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		profile, err := service.CreateProfile(c.Request.Context(), req.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, profile)
	}
}

func GetCurrentProfile(c *gin.Context) {
	profile, exists := c.Get("profile")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
