package main

import (
	"log"
	"time"

	"case_flow_app_go/config"
	"case_flow_app_go/db"
	"case_flow_app_go/handlers"
	"case_flow_app_go/middleware"
	"case_flow_app_go/models"
	"case_flow_app_go/services"
	"case_flow_app_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Board{},
		&models.Column{},
		&models.Case{},
		&models.CaseNote{},
		&models.CaseEmail{},
		&models.CaseEmailAttachment{},
		&models.CaseAttachment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize attachment storage
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.POST("/api/login", handlers.LoginHandler)

	// Mail relay webhook (authenticated upstream by the relay's secret
	// path, no session involved)
	e.POST("/api/webhooks/inbound-email", handlers.InboundEmailWebhookHandler)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.POST("/logout", handlers.LogoutHandler)
		api.GET("/me", handlers.GetCurrentUserHandler)

		// Boards
		api.GET("/boards", handlers.GetBoardsHandler)
		api.GET("/boards/:ref", handlers.GetBoardHandler)
		api.GET("/boards/:ref/export", handlers.ExportBoardHandler)
		api.POST("/boards", handlers.CreateBoardHandler, middleware.RequireRole(models.RoleAdmin))
		api.POST("/boards/:ref/columns", handlers.CreateColumnHandler, middleware.RequireRole(models.RoleAdmin))

		// Cases
		api.GET("/cases", handlers.GetCasesHandler)
		api.POST("/cases", handlers.CreateCaseHandler)
		api.GET("/cases/:id", handlers.GetCaseHandler)
		api.PATCH("/cases/:id", handlers.UpdateCaseHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))
		api.PUT("/cases/:id/move", handlers.MoveCaseHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))
		api.GET("/cases/:id/notes", handlers.GetCaseNotesHandler)
		api.POST("/cases/:id/notes", handlers.AddCaseNoteHandler)
		api.POST("/cases/:id/attachments", handlers.UploadCaseAttachmentHandler)
		api.GET("/cases/:id/attachments/:attachmentID", handlers.DownloadCaseAttachmentHandler)
		api.DELETE("/cases/:id/attachments/:attachmentID", handlers.DeleteCaseAttachmentHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))

		// Escalation
		api.POST("/cases/:id/escalate", handlers.EscalateCaseHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))
		api.POST("/cases/:id/deescalate", handlers.DeescalateCaseHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))

		// Trash
		api.GET("/trash", handlers.ListTrashHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))
		api.DELETE("/cases/:id", handlers.DeleteCaseHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))
		api.POST("/cases/:id/restore", handlers.RestoreCaseHandler, middleware.RequireRole(models.RoleAdmin, models.RoleAgent))
	}

	// Background jobs: session cleanup hourly, trash purge daily
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		jobs.PurgeExpiredTrash(db.DB, cfg.TrashRetentionDays)
		for range ticker.C {
			jobs.PurgeExpiredTrash(db.DB, cfg.TrashRetentionDays)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
