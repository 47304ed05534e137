package handlers

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dept-portal/models"
	"dept-portal/services"
)

type NoticeHandler struct {
	store        *services.Store
	minioService *services.MinIOService
}

func NewNoticeHandler(store *services.Store, minio *services.MinIOService) *NoticeHandler {
	return &NoticeHandler{
		store:        store,
		minioService: minio,
	}
}

// GetNotices returns all notices, newest first.
func (h *NoticeHandler) GetNotices(c *gin.Context) {
	notices, err := h.store.ListNotices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list notices",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notices})
}

type noticeRequest struct {
	ID     string `json:"id"`
	Title  string `json:"title" binding:"required"`
	Date   string `json:"date" binding:"required"`
	PDFKey string `json:"pdfKey"`
}

// SaveNotice creates or updates a notice. A replaced attachment's old object
// is deleted after the document is written.
func (h *NoticeHandler) SaveNotice(c *gin.Context) {
	var req noticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid notice",
			Message: err.Error(),
		})
		return
	}

	notice := models.Notice{
		ID:        req.ID,
		Title:     req.Title,
		Date:      req.Date,
		PDFKey:    req.PDFKey,
		Username:  actor(c),
		CreatedAt: time.Now(),
	}
	if notice.ID == "" {
		notice.ID = "notice-" + uuid.NewString()
	}

	previousPDF, err := h.store.UpsertNotice(c.Request.Context(), notice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save notice",
			Message: err.Error(),
		})
		return
	}
	if previousPDF != "" {
		if err := h.minioService.Remove(c.Request.Context(), previousPDF); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to remove replaced attachment",
				Message: err.Error(),
			})
			return
		}
	}
	h.store.Audit("UPDATE_NOTICE", actor(c), notice.Title)

	c.JSON(http.StatusOK, gin.H{"data": notice})
}

// UploadNoticePDF stores a notice attachment and returns its object key. The
// key is then attached via SaveNotice.
func (h *NoticeHandler) UploadNoticePDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required"})
		return
	}
	if strings.ToLower(path.Ext(fileHeader.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "only pdf attachments are accepted"})
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

	key := "notices/" + uuid.NewString() + "_" + fileHeader.Filename
	if err := h.minioService.Upload(c.Request.Context(), key, file, fileHeader.Size, "application/pdf"); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload attachment",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

// DownloadNoticePDF returns a presigned URL for a notice attachment.
func (h *NoticeHandler) DownloadNoticePDF(c *gin.Context) {
	notice, err := h.store.GetNotice(c.Request.Context(), c.Param("id"))
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "notice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load notice",
			Message: err.Error(),
		})
		return
	}
	if notice.PDFKey == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "notice has no attachment"})
		return
	}

	urlResponse, err := h.minioService.PresignedDownload(c.Request.Context(), notice.PDFKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate download url",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, urlResponse)
}

// DeleteNotice removes a notice and its attachment.
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id := c.Param("id")

	notice, err := h.store.GetNotice(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "notice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load notice",
			Message: err.Error(),
		})
		return
	}

	if notice.PDFKey != "" {
		if err := h.minioService.Remove(c.Request.Context(), notice.PDFKey); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to remove attachment",
				Message: err.Error(),
			})
			return
		}
	}
	if err := h.store.DeleteNotice(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete notice",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("DELETE_NOTICE", actor(c), notice.Title)

	c.JSON(http.StatusOK, gin.H{"message": "notice deleted"})
}
