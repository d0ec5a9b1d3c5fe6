package routes

import (
	"database/sql"

	"fitcoach_backend/config"
	"fitcoach_backend/handlers"
	"fitcoach_backend/mailer"
	"fitcoach_backend/middleware"
	"fitcoach_backend/push"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config) {
	jwtSecret := []byte(cfg.JWTSecret)

	var transport push.Transport
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		transport = &push.WebPush{
			Subscriber:      cfg.PushSubscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
		}
	}
	pushService := &push.Service{DB: db, Transport: transport}

	var mail mailer.Sender = mailer.Noop{}
	if cfg.ResendAPIKey != "" {
		mail = mailer.NewResend(cfg.ResendAPIKey, cfg.MailFrom)
	}

	roleLookup := &middleware.DBRoleLookup{DB: db}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, jwtSecret)
	memberHandler := handlers.NewMemberHandler(db)
	packageHandler := handlers.NewPackageHandler(db)
	lessonHandler := handlers.NewLessonHandler(db, pushService)
	measurementHandler := handlers.NewMeasurementHandler(db)
	postHandler := handlers.NewPostHandler(db)
	pushHandler := handlers.NewPushHandler(db, cfg, pushService)
	reportHandler := handlers.NewReportHandler(db, cfg, roleLookup, pushService, mail)
	healthHandler := handlers.NewHealthHandler(db)
	swHandler := handlers.NewSWHandler(cfg)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.GET("/blog/posts", postHandler.GetPosts)
	r.GET("/blog/posts/:id", postHandler.GetPost)
	r.GET("/sw/config", swHandler.GetConfig)

	// Server-to-server routes, each guarded by its own shared secret
	r.GET("/jobs/weekly-report", reportHandler.RunWeeklyReport)
	r.POST("/internal/push/send", pushHandler.SendInternal)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(db, jwtSecret))
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/userinfo", authHandler.GetUserInfo)

		// Push subscription routes
		protected.POST("/push/subscriptions", pushHandler.Subscribe)
		protected.DELETE("/push/subscriptions", pushHandler.Unsubscribe)

		// Notification routes
		protected.GET("/notifications", reportHandler.ListNotifications)

		// Package and lesson routes
		protected.GET("/packages", packageHandler.GetPackages)
		protected.GET("/lessons", lessonHandler.GetLessons)

		// Measurement routes
		protected.POST("/measurements", measurementHandler.CreateMeasurement)
		protected.GET("/measurements/progress", measurementHandler.GetProgress)
		protected.POST("/nutrition-logs", measurementHandler.CreateNutritionLog)

		// Admin routes
		protected.POST("/admin/trigger-report", reportHandler.TriggerReport)
		protected.POST("/admin/members", memberHandler.CreateMember)
		protected.GET("/admin/members", memberHandler.GetMembers)
		protected.PUT("/admin/members/:id", memberHandler.UpdateMember)
		protected.DELETE("/admin/members/:id", memberHandler.DeleteMember)
		protected.POST("/admin/packages", packageHandler.CreatePackage)
		protected.POST("/admin/lessons", lessonHandler.CreateLesson)
		protected.DELETE("/admin/lessons/:id", lessonHandler.DeleteLesson)
		protected.POST("/admin/posts", postHandler.CreatePost)
	}
}
