package handlers

import (
	"net/http"

	"newtab-go/pkg/models"
	"newtab-go/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func GetPreferences(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		prefs, err := service.GetPreferences(c.Request.Context(), profileID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, prefs)
	}
}

// UpdatePreferences applies the toggles present in the request body
func UpdatePreferences(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		var update models.PreferencesUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		prefs, err := service.UpdatePreferences(c.Request.Context(), profileID, update)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, prefs)
	}
}
