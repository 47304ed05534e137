package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"dept-portal/models"
	"dept-portal/services"
)

type SyllabusHandler struct {
	store        *services.Store
	minioService *services.MinIOService
	cacheService *services.CacheService
}

func NewSyllabusHandler(store *services.Store, minio *services.MinIOService, cache *services.CacheService) *SyllabusHandler {
	return &SyllabusHandler{
		store:        store,
		minioService: minio,
		cacheService: cache,
	}
}

// GetSyllabus returns the course catalogue ordered by course code.
func (h *SyllabusHandler) GetSyllabus(c *gin.Context) {
	entries, err := h.store.ListSyllabus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list syllabus",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

type syllabusRequest struct {
	Code   string  `json:"code" binding:"required"`
	Title  string  `json:"title" binding:"required"`
	Credit float64 `json:"credit" binding:"gte=0"`
	Type   string  `json:"type" binding:"omitempty,oneof=Theory Lab Project"`
}

// SaveSyllabus creates or replaces a catalogue entry, keyed by course code.
func (h *SyllabusHandler) SaveSyllabus(c *gin.Context) {
	var req syllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid syllabus entry",
			Message: err.Error(),
		})
		return
	}

	entry := models.Syllabus{
		Code:   req.Code,
		Title:  req.Title,
		Credit: req.Credit,
		Type:   req.Type,
	}
	if entry.Type == "" {
		entry.Type = "Theory"
	}

	if err := h.store.UpsertSyllabus(c.Request.Context(), entry); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save syllabus entry",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("UPDATE_SYLLABUS", actor(c), entry.Code)

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

// DeleteSyllabus removes a catalogue entry by course code.
func (h *SyllabusHandler) DeleteSyllabus(c *gin.Context) {
	code := c.Param("code")

	err := h.store.DeleteSyllabus(c.Request.Context(), code)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "syllabus entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete syllabus entry",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("DELETE_SYLLABUS", actor(c), code)

	c.JSON(http.StatusOK, gin.H{"message": "syllabus entry deleted"})
}

// UploadSyllabusPDF stores the full syllabus book and records its key in the
// site settings.
func (h *SyllabusHandler) UploadSyllabusPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required"})
		return
	}
	if strings.ToLower(path.Ext(fileHeader.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "only pdf files are accepted"})
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

	key := "static/syllabus.pdf"
	if err := h.minioService.Upload(c.Request.Context(), key, file, fileHeader.Size, "application/pdf"); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload syllabus pdf",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.SaveSettings(c.Request.Context(), bson.M{"syllabusPdfKey": key}); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save settings",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeySettings)
	h.store.Audit("UPLOAD_SYLLABUS_PDF", actor(c), fileHeader.Filename)

	c.JSON(http.StatusOK, gin.H{"key": key})
}

// DownloadSyllabusPDF returns a presigned URL for the full syllabus book.
func (h *SyllabusHandler) DownloadSyllabusPDF(c *gin.Context) {
	settings, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load settings",
			Message: err.Error(),
		})
		return
	}
	if settings.SyllabusPDFKey == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no syllabus pdf uploaded"})
		return
	}

	urlResponse, err := h.minioService.PresignedDownload(c.Request.Context(), settings.SyllabusPDFKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate download url",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, urlResponse)
}
