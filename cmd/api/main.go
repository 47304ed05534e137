package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"dept-portal/config"
	"dept-portal/handlers"
	"dept-portal/middleware"
	"dept-portal/services"
)

func main() {
	log.Println("Start service")
	_ = godotenv.Load()

	cfg := config.Load()

	log.Println("init services")
	store, err := services.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close(context.Background())

	minioService, err := services.NewMinIOService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	cacheService := services.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL)
	parserService := services.NewParserService()

	// Periodically drop the timetable snapshot so out-of-band edits (direct
	// db changes, another instance) become visible within one refresh cycle.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SnapshotRefresh, func() {
		cacheService.Delete(services.CacheKeySchedule)
	}); err != nil {
		log.Fatalf("Invalid snapshot refresh spec %q: %v", cfg.SnapshotRefresh, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("init handlers")
	scheduleHandler := handlers.NewScheduleHandler(store, minioService, cacheService, parserService)
	courseHandler := handlers.NewCourseHandler(store, minioService, cacheService)
	noticeHandler := handlers.NewNoticeHandler(store, minioService)
	syllabusHandler := handlers.NewSyllabusHandler(store, minioService, cacheService)
	feedbackHandler := handlers.NewFeedbackHandler(store)
	userHandler := handlers.NewUserHandler(store)
	settingsHandler := handlers.NewSettingsHandler(store, cacheService)
	adminHandler := handlers.NewAdminHandler(store, minioService, cacheService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	log.Println("init router")
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(gin.Recovery())

	canEditSchedule := middleware.RequirePermission(store, "schedule_edit")
	canEditCourses := middleware.RequirePermission(store, "courses_edit")
	canEditMaterials := middleware.RequirePermission(store, "course_materials_edit")
	canEditExams := middleware.RequirePermission(store, "exams_edit")
	canEditNotices := middleware.RequirePermission(store, "notices_edit")
	canEditSyllabus := middleware.RequirePermission(store, "syllabus_edit")
	canEditHomepage := middleware.RequirePermission(store, "homepage_edit")
	adminOnly := middleware.RequireAdmin(store)

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})

		// Timetable
		api.GET("/schedule", scheduleHandler.GetSchedule)
		api.GET("/schedule/view", scheduleHandler.GetScheduleView)
		api.GET("/schedule/routine", scheduleHandler.GetRoutineImage)
		api.POST("/schedule", canEditSchedule, scheduleHandler.SaveEvent)
		api.PUT("/schedule/:id/cancel", canEditSchedule, scheduleHandler.CancelEvent)
		api.DELETE("/schedule/:id", canEditSchedule, scheduleHandler.DeleteEvent)
		api.POST("/schedule/import", canEditSchedule, scheduleHandler.ImportRoutine)
		api.POST("/schedule/routine", canEditSchedule, scheduleHandler.UploadRoutineImage)

		// Courses, materials and exams
		api.GET("/courses", courseHandler.GetCourses)
		api.POST("/courses", canEditCourses, courseHandler.SaveCourse)
		api.POST("/courses/reorder", canEditCourses, courseHandler.ReorderCourses)
		api.DELETE("/courses/:id", canEditCourses, courseHandler.DeleteCourse)
		api.GET("/courses/:id/files/:fileId/download", courseHandler.DownloadFile)
		api.DELETE("/courses/:id/files/:fileId", canEditMaterials, courseHandler.DeleteFile)
		api.POST("/courses/:id/exams", canEditExams, courseHandler.AddExam)
		api.PUT("/courses/:id/exams/:examId", canEditExams, courseHandler.UpdateExam)
		api.DELETE("/courses/:id/exams/:examId", canEditExams, courseHandler.DeleteExam)

		// Notices
		api.GET("/notices", noticeHandler.GetNotices)
		api.POST("/notices", canEditNotices, noticeHandler.SaveNotice)
		api.POST("/notices/pdf", canEditNotices, noticeHandler.UploadNoticePDF)
		api.GET("/notices/:id/download", noticeHandler.DownloadNoticePDF)
		api.DELETE("/notices/:id", canEditNotices, noticeHandler.DeleteNotice)

		// Syllabus catalogue
		api.GET("/syllabus", syllabusHandler.GetSyllabus)
		api.POST("/syllabus", canEditSyllabus, syllabusHandler.SaveSyllabus)
		api.DELETE("/syllabus/:code", canEditSyllabus, syllabusHandler.DeleteSyllabus)
		api.GET("/syllabus/pdf", syllabusHandler.DownloadSyllabusPDF)
		api.POST("/syllabus/pdf", canEditSyllabus, syllabusHandler.UploadSyllabusPDF)

		// Student feedback; submissions are open, reads and deletes are not
		api.POST("/complaints", feedbackHandler.SubmitComplaint)
		api.GET("/complaints", adminOnly, feedbackHandler.GetComplaints)
		api.POST("/opinions", feedbackHandler.SubmitOpinion)
		api.GET("/opinions", adminOnly, feedbackHandler.GetOpinions)
		api.POST("/messages", feedbackHandler.SubmitMessage)
		api.GET("/messages", adminOnly, feedbackHandler.GetMessages)
		api.DELETE("/admin/complaints/:id", adminOnly, feedbackHandler.DeleteComplaint)
		api.DELETE("/admin/opinions/:id", adminOnly, feedbackHandler.DeleteOpinion)
		api.DELETE("/admin/messages/:id", adminOnly, feedbackHandler.DeleteMessage)

		// Accounts
		api.POST("/auth/login", userHandler.Login)
		api.GET("/users", adminOnly, userHandler.GetUsers)
		api.POST("/users", adminOnly, userHandler.CreateUser)
		api.PUT("/users/:id", adminOnly, userHandler.UpdateUser)
		api.DELETE("/users/:id", adminOnly, userHandler.DeleteUser)
		api.PUT("/users/:id/permissions", adminOnly, userHandler.UpdatePermissions)

		// Site settings
		api.GET("/settings", settingsHandler.GetSettings)
		api.POST("/settings", canEditHomepage, settingsHandler.SaveSettings)

		// Admin
		api.GET("/admin/logs", adminOnly, adminHandler.GetAuditLogs)
		api.DELETE("/admin/logs", adminOnly, adminHandler.ClearAuditLogs)
		api.GET("/admin/deletion-requests", adminOnly, adminHandler.GetDeletionRequests)
		api.POST("/admin/deletion-requests", adminHandler.CreateDeletionRequest)
		api.POST("/admin/deletion-requests/:id/approve", adminOnly, adminHandler.ApproveDeletionRequest)
		api.POST("/admin/deletion-requests/:id/reject", adminOnly, adminHandler.RejectDeletionRequest)
	}

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
