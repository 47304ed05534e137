package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"dept-portal/models"
	"dept-portal/services"
	"dept-portal/timetable"
)

type SettingsHandler struct {
	store        *services.Store
	cacheService *services.CacheService
}

func NewSettingsHandler(store *services.Store, cache *services.CacheService) *SettingsHandler {
	return &SettingsHandler{
		store:        store,
		cacheService: cache,
	}
}

// GetSettings returns the site-wide settings document.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	if cached, found := h.cacheService.GetSettings(); found {
		c.JSON(http.StatusOK, gin.H{
			"data":   cached,
			"cached": true,
		})
		return
	}

	settings, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load settings",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.SetSettings(settings)

	c.JSON(http.StatusOK, gin.H{
		"data":   settings,
		"cached": false,
	})
}

type settingsRequest struct {
	VisibleDays         []string `json:"visibleDays"`
	DefaultScheduleView string   `json:"defaultScheduleView"`
}

// SaveSettings updates the visible day set and the default layout mode.
// Unknown day names and layout modes are rejected.
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid settings",
			Message: err.Error(),
		})
		return
	}

	fields := bson.M{}
	if req.VisibleDays != nil {
		for _, day := range req.VisibleDays {
			if timetable.DayIndex(day) < 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error: "unknown day name: " + day,
				})
				return
			}
		}
		fields["visibleDays"] = req.VisibleDays
	}
	if req.DefaultScheduleView != "" {
		if _, ok := timetable.ParseLayoutMode(req.DefaultScheduleView); !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "defaultScheduleView must be classic or precision",
			})
			return
		}
		fields["defaultScheduleView"] = req.DefaultScheduleView
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "nothing to update"})
		return
	}

	if err := h.store.SaveSettings(c.Request.Context(), fields); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save settings",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeySettings)
	h.store.Audit("UPDATE_SETTINGS", actor(c), "")

	c.JSON(http.StatusOK, gin.H{"message": "settings saved"})
}
