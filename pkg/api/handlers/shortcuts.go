package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"newtab-go/pkg/models"
	"newtab-go/pkg/services"
	"newtab-go/pkg/shortcuts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListShortcuts lists all shortcuts of the authenticated profile
func ListShortcuts(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		list, err := service.ListShortcuts(c.Request.Context(), profileID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// CreateShortcut appends a placeholder shortcut
func CreateShortcut(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		shortcut, err := service.CreateShortcut(c.Request.Context(), profileID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, shortcut)
	}
}

// UpdateShortcut commits the name and URL of a shortcut
func UpdateShortcut(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		index, ok := indexParam(c)
		if !ok {
			return
		}

		var update models.ShortcutUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		shortcut, err := service.CommitShortcut(c.Request.Context(), profileID, index, update)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, shortcut)
	}
}

// DeleteShortcut deletes a shortcut and renumbers the ones after it
func DeleteShortcut(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		index, ok := indexParam(c)
		if !ok {
			return
		}

		if err := service.DeleteShortcut(c.Request.Context(), profileID, index); err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// ResetShortcuts restores the preset shortcuts
func ResetShortcuts(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		list, err := service.ResetShortcuts(c.Request.Context(), profileID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// GetShortcutIcon returns the resolved icon of a shortcut
func GetShortcutIcon(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		index, ok := indexParam(c)
		if !ok {
			return
		}

		icon, err := service.ShortcutIcon(c.Request.Context(), profileID, index)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, icon.View())
	}
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shortcut index"})
		return 0, false
	}
	return index, true
}

// respondError maps service errors to status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shortcuts.ErrMaxShortcuts), errors.Is(err, shortcuts.ErrMinShortcuts):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, shortcuts.ErrIndexOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
