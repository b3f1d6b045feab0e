package handlers

import (
	"errors"
	"log"
	"net/http"

	"newtab-go/pkg/api/middleware"
	"newtab-go/pkg/models"
	"newtab-go/pkg/services"
	"newtab-go/pkg/shortcuts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Page renders the new-tab page, or the welcome form for a browser without
// a profile
func Page(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := c.Get("profile")
		if !ok {
			c.HTML(http.StatusOK, "welcome.tmpl", nil)
			return
		}
		p := profile.(*models.Profile)

		view, err := service.View(c.Request.Context(), p.ID)
		if err != nil {
			pageError(c, err)
			return
		}

		c.HTML(http.StatusOK, "index.tmpl", gin.H{
			"Profile": p,
			"View":    view,
		})
	}
}

// RegisterBrowser creates a profile for this browser and remembers its key
func RegisterBrowser(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProfileCreate
		if err := c.ShouldBind(&req); err != nil {
			c.HTML(http.StatusBadRequest, "welcome.tmpl", gin.H{"Error": "Please enter a name for this browser."})
			return
		}

		profile, err := service.CreateProfile(c.Request.Context(), req.Name)
		if err != nil {
			pageError(c, err)
			return
		}

		middleware.SetKeyCookie(c, profile.APIKey)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func PageCreateShortcut(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		if _, err := service.CreateShortcut(c.Request.Context(), profileID); err != nil {
			pageError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// PageCommitShortcut is submitted when a settings input loses focus
func PageCommitShortcut(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		index, ok := indexParam(c)
		if !ok {
			return
		}

		var update models.ShortcutUpdate
		if err := c.ShouldBind(&update); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		if _, err := service.CommitShortcut(c.Request.Context(), profileID, index, update); err != nil {
			pageError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func PageDeleteShortcut(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		index, ok := indexParam(c)
		if !ok {
			return
		}

		if err := service.DeleteShortcut(c.Request.Context(), profileID, index); err != nil {
			pageError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func PageResetShortcuts(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		if _, err := service.ResetShortcuts(c.Request.Context(), profileID); err != nil {
			pageError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// PageUpdatePreferences stores both checkboxes of the settings form. An
// unchecked box is absent from the submitted form.
func PageUpdatePreferences(service *services.ShortcutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.MustGet("profileID").(uuid.UUID)

		show := c.PostForm("show_shortcuts") != ""
		adaptive := c.PostForm("adaptive_icons") != ""
		update := models.PreferencesUpdate{
			ShowShortcuts: &show,
			AdaptiveIcons: &adaptive,
		}

		if _, err := service.UpdatePreferences(c.Request.Context(), profileID, update); err != nil {
			pageError(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// pageError ignores limit and range errors, since the page disables those
// controls anyway, and reports everything else.
func pageError(c *gin.Context, err error) {
	if errors.Is(err, shortcuts.ErrMaxShortcuts) ||
		errors.Is(err, shortcuts.ErrMinShortcuts) ||
		errors.Is(err, shortcuts.ErrIndexOutOfRange) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	log.Printf("page request failed: %v", err)
	c.Error(err)
	c.String(http.StatusInternalServerError, "internal server error")
}
