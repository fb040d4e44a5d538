// Package http собирает HTTP API сервиса заметок на gin.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"notes-backend/internal/api/http/handlers"
	"notes-backend/internal/api/http/middleware"
	"notes-backend/internal/config"
	"notes-backend/internal/export"
	svc "notes-backend/internal/service"
	"notes-backend/internal/service/notes"
)

// NewRouter собирает gin engine со всеми маршрутами и middleware
func NewRouter(
	cfg *config.Config,
	log zerolog.Logger,
	noteService svc.NoteService,
	pdf *export.PDFExporter,
	events *notes.EventService,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logging(log))
	engine.Use(middleware.RateLimit(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst))

	noteHandler := handlers.NewNoteHandler(noteService)
	shareHandler := handlers.NewShareHandler(noteService)
	trashHandler := handlers.NewTrashHandler(noteService)
	exportHandler := handlers.NewExportHandler(noteService, pdf, events)

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))
	{
		api.POST("/notes", noteHandler.Create)
		api.GET("/notes", noteHandler.List)
		api.GET("/notes/shared", noteHandler.ListShared)
		api.GET("/notes/export", exportHandler.ExportCollection)
		api.GET("/notes/:id", noteHandler.Get)
		api.PUT("/notes/:id", noteHandler.Update)
		api.DELETE("/notes/:id", noteHandler.SoftDelete)
		api.PATCH("/notes/:id/pin", noteHandler.SetPinned)
		api.PATCH("/notes/:id/archive", noteHandler.SetArchived)

		api.GET("/notes/:id/access", shareHandler.CheckAccess)
		api.POST("/notes/:id/share", shareHandler.Share)
		api.DELETE("/notes/:id/share/:userId", shareHandler.Unshare)

		api.GET("/notes/:id/export", exportHandler.ExportNote)
		api.POST("/import", exportHandler.Import)

		api.GET("/trash", trashHandler.List)
		api.POST("/trash/:id/restore", trashHandler.Restore)
		api.DELETE("/trash/:id", trashHandler.Purge)
		api.DELETE("/trash", trashHandler.Empty)

		api.GET("/events", exportHandler.Events)
	}

	return engine
}
