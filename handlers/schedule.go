package handlers

import (
	"context"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"dept-portal/middleware"
	"dept-portal/models"
	"dept-portal/services"
	"dept-portal/timetable"
)

// ScheduleStore is the slice of the store the schedule handler needs.
type ScheduleStore interface {
	ListScheduleEvents(ctx context.Context) ([]models.ScheduleEvent, error)
	UpsertScheduleEvent(ctx context.Context, e models.ScheduleEvent) error
	InsertScheduleEvents(ctx context.Context, events []models.ScheduleEvent) error
	SetScheduleCancelled(ctx context.Context, id string, cancelled bool) error
	DeleteScheduleEvent(ctx context.Context, id string) error
	GetSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, fields bson.M) error
	Audit(action, username, details string)
}

type ScheduleHandler struct {
	store        ScheduleStore
	minioService *services.MinIOService
	cacheService *services.CacheService
	parser       *services.ParserService
}

func NewScheduleHandler(store ScheduleStore, minio *services.MinIOService, cache *services.CacheService, parser *services.ParserService) *ScheduleHandler {
	return &ScheduleHandler{
		store:        store,
		minioService: minio,
		cacheService: cache,
		parser:       parser,
	}
}

// events returns the timetable snapshot, cache-aside.
func (h *ScheduleHandler) events(ctx context.Context) ([]models.ScheduleEvent, bool, error) {
	if cached, found := h.cacheService.GetEvents(); found {
		return cached, true, nil
	}
	events, err := h.store.ListScheduleEvents(ctx)
	if err != nil {
		return nil, false, err
	}
	h.cacheService.SetEvents(events)
	return events, false, nil
}

// GetSchedule returns the raw event list.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	events, cached, err := h.events(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load schedule",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":   events,
		"cached": cached,
	})
}

// GetScheduleView resolves and lays out the timetable for one calendar
// anchor. Query parameters: date (YYYY-MM-DD, default today), view
// (day/week/2week/month, default week) and layout (classic/precision,
// default from site settings).
func (h *ScheduleHandler) GetScheduleView(c *gin.Context) {
	anchor := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "date must be YYYY-MM-DD",
			})
			return
		}
		anchor = parsed
	}

	view := timetable.ViewWeek
	if raw := c.Query("view"); raw != "" {
		parsed, ok := timetable.ParseViewMode(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "view must be one of day, week, 2week, month",
			})
			return
		}
		view = parsed
	}

	settings, err := h.settings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load settings",
			Message: err.Error(),
		})
		return
	}

	layout, _ := timetable.ParseLayoutMode(settings.DefaultScheduleView)
	if raw := c.Query("layout"); raw != "" {
		parsed, ok := timetable.ParseLayoutMode(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "layout must be classic or precision",
			})
			return
		}
		layout = parsed
	}

	events, _, err := h.events(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load schedule",
			Message: err.Error(),
		})
		return
	}

	composed := timetable.Compose(events, timetable.Options{
		Anchor:      anchor,
		View:        view,
		Layout:      layout,
		VisibleDays: settings.VisibleDays,
	})
	if len(composed.Dropped) > 0 {
		log.Printf("Schedule - %d event(s) overlap no slot and were dropped from the view: %s",
			len(composed.Dropped), strings.Join(composed.Dropped, ", "))
	}

	c.JSON(http.StatusOK, composed)
}

func (h *ScheduleHandler) settings(ctx context.Context) (*models.Settings, error) {
	if cached, found := h.cacheService.GetSettings(); found {
		return cached, nil
	}
	settings, err := h.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	h.cacheService.SetSettings(settings)
	return settings, nil
}

type eventRequest struct {
	ID         string `json:"id"`
	Day        string `json:"day" binding:"required,weekday"`
	StartTime  string `json:"startTime" binding:"required,hhmm"`
	EndTime    string `json:"endTime" binding:"required,hhmm"`
	Type       string `json:"type" binding:"omitempty,oneof=Class Lab Break Tiffin Prayer Exam"`
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	Recurrence string `json:"recurrence" binding:"omitempty,oneof=weekly odd even"`
	Color      string `json:"color"`
}

// SaveEvent creates or replaces a timetable event.
func (h *ScheduleHandler) SaveEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid event",
			Message: err.Error(),
		})
		return
	}

	event := models.ScheduleEvent{
		ID:         req.ID,
		Day:        req.Day,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       req.Type,
		CourseID:   req.CourseID,
		CourseName: req.CourseName,
		Instructor: req.Instructor,
		Room:       req.Room,
		Recurrence: req.Recurrence,
		Color:      req.Color,
	}
	if event.ID == "" {
		event.ID = "sched-" + uuid.NewString()
	}
	if event.Type == "" {
		event.Type = "Class"
	}
	if event.Recurrence == "" {
		event.Recurrence = timetable.RecurWeekly
	}
	if err := timetable.ValidateEvent(event); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid event",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.UpsertScheduleEvent(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save event",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeySchedule)
	h.store.Audit("UPDATE_SCHEDULE", actor(c), event.CourseName+" ("+event.Day+" "+event.StartTime+")")

	c.JSON(http.StatusOK, gin.H{"data": event})
}

type cancelRequest struct {
	IsCancelled bool `json:"isCancelled"`
}

// CancelEvent toggles a single occurrence's cancelled flag.
func (h *ScheduleHandler) CancelEvent(c *gin.Context) {
	id := c.Param("id")
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "invalid body",
		})
		return
	}

	err := h.store.SetScheduleCancelled(c.Request.Context(), id, req.IsCancelled)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update event",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeySchedule)

	action := "CANCEL_CLASS"
	if !req.IsCancelled {
		action = "RESTORE_CLASS"
	}
	h.store.Audit(action, actor(c), id)

	c.JSON(http.StatusOK, gin.H{"message": "event updated"})
}

// DeleteEvent removes an event from the timetable.
func (h *ScheduleHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")

	err := h.store.DeleteScheduleEvent(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete event",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeySchedule)
	h.store.Audit("DELETE_SCHEDULE", actor(c), id)

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// ImportRoutine bulk-imports events from an uploaded spreadsheet. Rejected
// rows are reported per row; valid rows are inserted regardless.
func (h *ScheduleHandler) ImportRoutine(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	events, rowErrors, err := h.parser.ParseRoutineXLSX(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse spreadsheet",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.InsertScheduleEvents(c.Request.Context(), events); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save imported events",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeySchedule)
	h.store.Audit("IMPORT_ROUTINE", actor(c), fileHeader.Filename)

	c.JSON(http.StatusOK, gin.H{
		"imported": len(events),
		"rejected": rowErrors,
	})
}

// UploadRoutineImage stores the published routine image and records its key
// in the site settings.
func (h *ScheduleHandler) UploadRoutineImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	key := "static/routine" + strings.ToLower(path.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.minioService.Upload(c.Request.Context(), key, file, fileHeader.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload routine image",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.SaveSettings(c.Request.Context(), bson.M{"routineImageKey": key}); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save settings",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeySettings)
	h.store.Audit("UPLOAD_ROUTINE_IMAGE", actor(c), fileHeader.Filename)

	c.JSON(http.StatusOK, gin.H{"key": key})
}

// GetRoutineImage returns a presigned URL for the published routine image.
func (h *ScheduleHandler) GetRoutineImage(c *gin.Context) {
	settings, err := h.settings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load settings",
			Message: err.Error(),
		})
		return
	}
	if settings.RoutineImageKey == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no routine image uploaded"})
		return
	}

	urlResponse, err := h.minioService.PresignedDownload(c.Request.Context(), settings.RoutineImageKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate download url",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, urlResponse)
}

// actor names the authenticated user for the audit trail. Reads reach here
// without auth middleware, so the fallback matters.
func actor(c *gin.Context) string {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.Username
	}
	return c.GetHeader("X-Username")
}
