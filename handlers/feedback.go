package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dept-portal/models"
	"dept-portal/services"
)

// FeedbackHandler covers the anonymous student inputs: complaints, opinions
// and contact messages. Submissions are open; reads and deletes are
// admin-only and gated at the router.
type FeedbackHandler struct {
	store *services.Store
}

func NewFeedbackHandler(store *services.Store) *FeedbackHandler {
	return &FeedbackHandler{store: store}
}

type complaintRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Department  string `json:"department"`
	Description string `json:"description" binding:"required"`
	Anonymous   bool   `json:"anonymous"`
}

func (h *FeedbackHandler) SubmitComplaint(c *gin.Context) {
	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid complaint",
			Message: err.Error(),
		})
		return
	}

	complaint := models.Complaint{
		ID:          "comp-" + uuid.NewString(),
		Subject:     req.Subject,
		Department:  req.Department,
		Description: req.Description,
		Anonymous:   req.Anonymous,
		Date:        time.Now().Format(time.RFC3339),
	}
	if err := h.store.InsertComplaint(c.Request.Context(), complaint); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to submit complaint",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": complaint})
}

func (h *FeedbackHandler) GetComplaints(c *gin.Context) {
	complaints, err := h.store.ListComplaints(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list complaints",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": complaints})
}

func (h *FeedbackHandler) DeleteComplaint(c *gin.Context) {
	if err := h.store.DeleteComplaint(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete complaint",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("DELETE_COMPLAINT", actor(c), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "complaint deleted"})
}

type opinionRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

func (h *FeedbackHandler) SubmitOpinion(c *gin.Context) {
	var req opinionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid opinion",
			Message: err.Error(),
		})
		return
	}

	opinion := models.Opinion{
		ID:       "op-" + uuid.NewString(),
		Rating:   req.Rating,
		Feedback: req.Feedback,
		Date:     time.Now().Format(time.RFC3339),
	}
	if err := h.store.InsertOpinion(c.Request.Context(), opinion); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to submit opinion",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": opinion})
}

func (h *FeedbackHandler) GetOpinions(c *gin.Context) {
	opinions, err := h.store.ListOpinions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list opinions",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": opinions})
}

func (h *FeedbackHandler) DeleteOpinion(c *gin.Context) {
	if err := h.store.DeleteOpinion(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete opinion",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("DELETE_OPINION", actor(c), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "opinion deleted"})
}

type messageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *FeedbackHandler) SubmitMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid message",
			Message: err.Error(),
		})
		return
	}

	message := models.Message{
		ID:      "msg-" + uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Date:    time.Now(),
	}
	if err := h.store.InsertMessage(c.Request.Context(), message); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to submit message",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": message})
}

func (h *FeedbackHandler) GetMessages(c *gin.Context) {
	messages, err := h.store.ListMessages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list messages",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": messages})
}

func (h *FeedbackHandler) DeleteMessage(c *gin.Context) {
	if err := h.store.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete message",
			Message: err.Error(),
		})
		return
	}
	h.store.Audit("DELETE_MESSAGE", actor(c), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}
