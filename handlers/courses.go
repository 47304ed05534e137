package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dept-portal/models"
	"dept-portal/services"
)

type CourseHandler struct {
	store        *services.Store
	minioService *services.MinIOService
	cacheService *services.CacheService
}

func NewCourseHandler(store *services.Store, minio *services.MinIOService, cache *services.CacheService) *CourseHandler {
	return &CourseHandler{
		store:        store,
		minioService: minio,
		cacheService: cache,
	}
}

// GetCourses returns all courses with their files and exams, in display order.
func (h *CourseHandler) GetCourses(c *gin.Context) {
	if cached, found := h.cacheService.Get(services.CacheKeyCourses); found {
		c.JSON(http.StatusOK, gin.H{
			"data":   cached,
			"cached": true,
		})
		return
	}

	courses, err := h.store.ListCourses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list courses",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Set(services.CacheKeyCourses, courses, 0)

	c.JSON(http.StatusOK, gin.H{
		"data":   courses,
		"cached": false,
	})
}

// SaveCourse creates or updates a course from a multipart form. Any attached
// files are stored under materials/<courseId>/ and appended to the course.
func (h *CourseHandler) SaveCourse(c *gin.Context) {
	courseID := strings.TrimSpace(c.PostForm("courseId"))
	courseName := strings.TrimSpace(c.PostForm("courseName"))
	instructor := strings.TrimSpace(c.PostForm("instructor"))
	if courseID == "" || courseName == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "courseId and courseName are required",
		})
		return
	}

	created, err := h.store.SaveCourse(c.Request.Context(), courseID, courseName, instructor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save course",
			Message: err.Error(),
		})
		return
	}

	form, _ := c.MultipartForm()
	uploaded := make([]models.FileAttachment, 0)
	if form != nil {
		for _, fileHeader := range form.File["files"] {
			attachment, err := h.attachFile(c, courseID, fileHeader)
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error:   fmt.Sprintf("failed to upload %s", fileHeader.Filename),
					Message: err.Error(),
				})
				return
			}
			uploaded = append(uploaded, attachment)
		}
	}
	h.cacheService.Delete(services.CacheKeyCourses)

	action := "UPDATE_COURSE"
	status := http.StatusOK
	if created {
		action = "CREATE_COURSE"
		status = http.StatusCreated
	}
	h.store.Audit(action, actor(c), courseName)

	c.JSON(status, gin.H{
		"message":  "course saved",
		"uploaded": uploaded,
	})
}

func (h *CourseHandler) attachFile(c *gin.Context, courseID string, fileHeader *multipart.FileHeader) (models.FileAttachment, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return models.FileAttachment{}, err
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	fileType := "image"
	if ext == ".pdf" {
		fileType = "pdf"
	}

	attachment := models.FileAttachment{
		ID:         "file-" + uuid.NewString(),
		Name:       fileHeader.Filename,
		Type:       fileType,
		ObjectKey:  fmt.Sprintf("materials/%s/%s_%s", courseID, uuid.NewString(), fileHeader.Filename),
		UploadedBy: actor(c),
		UploadDate: time.Now(),
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.minioService.Upload(c.Request.Context(), attachment.ObjectKey, file, fileHeader.Size, contentType); err != nil {
		return models.FileAttachment{}, err
	}
	if err := h.store.AddCourseFile(c.Request.Context(), courseID, attachment); err != nil {
		return models.FileAttachment{}, err
	}
	h.store.Audit("UPLOAD_FILE", actor(c), attachment.Name)
	return attachment, nil
}

// DeleteCourse removes a course along with every stored material.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")

	course, err := h.store.GetCourse(c.Request.Context(), id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load course",
			Message: err.Error(),
		})
		return
	}

	for _, file := range course.Files {
		if err := h.minioService.Remove(c.Request.Context(), file.ObjectKey); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to delete course files",
				Message: err.Error(),
			})
			return
		}
	}
	if err := h.store.DeleteCourse(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete course",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeyCourses)
	h.store.Audit("DELETE_COURSE", actor(c), course.Name)

	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ReorderCourses rewrites the display order to follow the given id sequence.
func (h *CourseHandler) ReorderCourses(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "ids are required",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.ReorderCourses(c.Request.Context(), req.IDs); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to reorder courses",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeyCourses)
	h.store.Audit("REORDER_COURSES", actor(c), fmt.Sprintf("%d courses", len(req.IDs)))

	c.JSON(http.StatusOK, gin.H{"message": "courses reordered"})
}

// DeleteFile detaches a material from its course and deletes the object.
func (h *CourseHandler) DeleteFile(c *gin.Context) {
	courseID := c.Param("id")
	fileID := c.Param("fileId")

	removed, err := h.store.RemoveCourseFile(c.Request.Context(), courseID, fileID)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete file",
			Message: err.Error(),
		})
		return
	}
	if err := h.minioService.Remove(c.Request.Context(), removed.ObjectKey); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete stored object",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeyCourses)
	h.store.Audit("DELETE_FILE", actor(c), removed.Name)

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

// DownloadFile returns a presigned URL for one course material.
func (h *CourseHandler) DownloadFile(c *gin.Context) {
	courseID := c.Param("id")
	fileID := c.Param("fileId")

	course, err := h.store.GetCourse(c.Request.Context(), courseID)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load course",
			Message: err.Error(),
		})
		return
	}

	for _, file := range course.Files {
		if file.ID != fileID {
			continue
		}
		urlResponse, err := h.minioService.PresignedDownload(c.Request.Context(), file.ObjectKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to generate download url",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, urlResponse)
		return
	}

	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
}

type examRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time"`
	Syllabus string `json:"syllabus"`
}

// AddExam attaches an exam entry to a course.
func (h *CourseHandler) AddExam(c *gin.Context) {
	courseID := c.Param("id")
	var req examRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid exam",
			Message: err.Error(),
		})
		return
	}

	exam := models.Exam{
		ID:       req.ID,
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Syllabus: req.Syllabus,
	}
	if exam.ID == "" {
		exam.ID = "exam-" + uuid.NewString()
	}

	err := h.store.AddExam(c.Request.Context(), courseID, exam)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to add exam",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeyCourses)
	h.store.Audit("ADD_EXAM", actor(c), exam.Title)

	c.JSON(http.StatusCreated, gin.H{"data": exam})
}

// UpdateExam rewrites an existing exam entry.
func (h *CourseHandler) UpdateExam(c *gin.Context) {
	courseID := c.Param("id")
	examID := c.Param("examId")
	var req examRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid exam",
			Message: err.Error(),
		})
		return
	}

	exam := models.Exam{
		ID:       examID,
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Syllabus: req.Syllabus,
	}
	err := h.store.UpdateExam(c.Request.Context(), courseID, exam)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "exam not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update exam",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeyCourses)
	h.store.Audit("UPDATE_EXAM", actor(c), exam.Title)

	c.JSON(http.StatusOK, gin.H{"data": exam})
}

// DeleteExam removes an exam entry from a course.
func (h *CourseHandler) DeleteExam(c *gin.Context) {
	courseID := c.Param("id")
	examID := c.Param("examId")

	err := h.store.RemoveExam(c.Request.Context(), courseID, examID)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "exam not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete exam",
			Message: err.Error(),
		})
		return
	}
	h.cacheService.Delete(services.CacheKeyCourses)
	h.store.Audit("DELETE_EXAM", actor(c), examID)

	c.JSON(http.StatusOK, gin.H{"message": "exam deleted"})
}
