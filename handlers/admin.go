package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dept-portal/models"
	"dept-portal/services"
)

// AdminHandler serves the audit trail and the deletion-request queue. An
// editor who lacks delete rights files a request; an admin approves it here,
// which executes the deletion, or rejects it.
type AdminHandler struct {
	store        *services.Store
	minioService *services.MinIOService
	cacheService *services.CacheService
}

func NewAdminHandler(store *services.Store, minio *services.MinIOService, cache *services.CacheService) *AdminHandler {
	return &AdminHandler{
		store:        store,
		minioService: minio,
		cacheService: cache,
	}
}

// GetAuditLogs returns the 100 most recent admin actions.
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	logs, err := h.store.ListAuditLogs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list audit logs",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}

// ClearAuditLogs wipes the audit trail.
func (h *AdminHandler) ClearAuditLogs(c *gin.Context) {
	if err := h.store.ClearAuditLogs(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to clear audit logs",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("CLEAR_LOGS", actor(c), "")
	c.JSON(http.StatusOK, gin.H{"message": "audit logs cleared"})
}

// GetDeletionRequests lists the queue, newest first.
func (h *AdminHandler) GetDeletionRequests(c *gin.Context) {
	requests, err := h.store.ListDeletionRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list deletion requests",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": requests})
}

type deletionRequestBody struct {
	Type       string            `json:"type" binding:"required,oneof=course file exam schedule syllabus notice"`
	ResourceID string            `json:"resourceId" binding:"required"`
	Details    map[string]string `json:"details"`
}

// CreateDeletionRequest files a pending request for an admin to review.
func (h *AdminHandler) CreateDeletionRequest(c *gin.Context) {
	var req deletionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid deletion request",
			Message: err.Error(),
		})
		return
	}

	request := models.DeletionRequest{
		ID:          "delreq-" + uuid.NewString(),
		Type:        req.Type,
		ResourceID:  req.ResourceID,
		Details:     req.Details,
		RequestedBy: actor(c),
		Status:      "pending",
		Date:        time.Now(),
	}
	if err := h.store.InsertDeletionRequest(c.Request.Context(), request); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to file deletion request",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("REQUEST_DELETION", actor(c), req.Type+" "+req.ResourceID)

	c.JSON(http.StatusCreated, gin.H{"data": request})
}

// ApproveDeletionRequest executes a pending request, then marks it approved.
func (h *AdminHandler) ApproveDeletionRequest(c *gin.Context) {
	id := c.Param("id")

	request, err := h.store.GetDeletionRequest(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "deletion request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load deletion request",
			Message: err.Error(),
		})
		return
	}
	if request.Status != "pending" {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "deletion request already resolved"})
		return
	}

	if err := h.execute(c, request); err != nil && err != services.ErrNotFound {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to execute deletion",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.SetDeletionRequestStatus(c.Request.Context(), id, "approved"); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update deletion request",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("APPROVE_DELETION", actor(c), request.Type+" "+request.ResourceID)

	c.JSON(http.StatusOK, gin.H{"message": "deletion request approved"})
}

// RejectDeletionRequest marks a pending request rejected without touching
// the resource.
func (h *AdminHandler) RejectDeletionRequest(c *gin.Context) {
	id := c.Param("id")

	request, err := h.store.GetDeletionRequest(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "deletion request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load deletion request",
			Message: err.Error(),
		})
		return
	}
	if request.Status != "pending" {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "deletion request already resolved"})
		return
	}

	if err := h.store.SetDeletionRequestStatus(c.Request.Context(), id, "rejected"); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update deletion request",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("REJECT_DELETION", actor(c), request.Type+" "+request.ResourceID)

	c.JSON(http.StatusOK, gin.H{"message": "deletion request rejected"})
}

// execute performs the approved deletion. A resource already gone is fine;
// the request still resolves.
func (h *AdminHandler) execute(c *gin.Context, request *models.DeletionRequest) error {
	ctx := c.Request.Context()

	switch request.Type {
	case "schedule":
		h.cacheService.Delete(services.CacheKeySchedule)
		return h.store.DeleteScheduleEvent(ctx, request.ResourceID)

	case "notice":
		notice, err := h.store.GetNotice(ctx, request.ResourceID)
		if err != nil {
			return err
		}
		if notice.PDFKey != "" {
			if err := h.minioService.Remove(ctx, notice.PDFKey); err != nil {
				return err
			}
		}
		return h.store.DeleteNotice(ctx, request.ResourceID)

	case "syllabus":
		return h.store.DeleteSyllabus(ctx, request.ResourceID)

	case "course":
		course, err := h.store.GetCourse(ctx, request.ResourceID)
		if err != nil {
			return err
		}
		for _, file := range course.Files {
			if err := h.minioService.Remove(ctx, file.ObjectKey); err != nil {
				return err
			}
		}
		h.cacheService.Delete(services.CacheKeyCourses)
		return h.store.DeleteCourse(ctx, request.ResourceID)

	case "file":
		courseID := request.Details["courseId"]
		removed, err := h.store.RemoveCourseFile(ctx, courseID, request.ResourceID)
		if err != nil {
			return err
		}
		h.cacheService.Delete(services.CacheKeyCourses)
		return h.minioService.Remove(ctx, removed.ObjectKey)

	case "exam":
		courseID := request.Details["courseId"]
		h.cacheService.Delete(services.CacheKeyCourses)
		return h.store.RemoveExam(ctx, courseID, request.ResourceID)
	}
	return nil
}
