package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"

	httpapi "notes-backend/internal/api/http"
	"notes-backend/internal/config"
	"notes-backend/internal/export"
	"notes-backend/internal/logger"
	"notes-backend/internal/repository"
	"notes-backend/internal/repository/memory"
	"notes-backend/internal/repository/surreal"
	notesService "notes-backend/internal/service/notes"
	"notes-backend/internal/sweeper"
)

const configFile = "config.yml"

func main() {
	// Загружаем конфигурацию из файла
	appConfig, err := config.InitConfig[config.Config](configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(appConfig.Logger.Level)
	log.Info().Int("port", appConfig.Server.Port).Msg("starting notes backend")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация компонентов (DI): Repository → Service → Handler
	var noteRepo repository.NoteRepository
	var userRepo repository.UserRepository

	switch appConfig.Storage.Backend {
	case "surreal":
		db, err := surreal.Connect(ctx, surreal.Config{
			Endpoint:  appConfig.Storage.Endpoint,
			Namespace: appConfig.Storage.Namespace,
			Database:  appConfig.Storage.Database,
			Username:  appConfig.Storage.Username,
			Password:  appConfig.Storage.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to surrealdb")
		}
		defer db.Close(context.Background())

		noteRepo = surreal.NewNoteRepository(db)
		userRepo = surreal.NewUserRepository(db)
		log.Info().Str("endpoint", appConfig.Storage.Endpoint).Msg("initialized surrealdb repositories")
	default:
		noteRepo = memory.NewNoteRepository()
		userRepo = memory.NewUserRepository()
		log.Info().Msg("initialized in-memory repositories (map-based)")
	}

	events := notesService.NewEventService()
	noteSvc := notesService.NewNoteService(noteRepo, userRepo, events)
	log.Info().Msg("initialized note service")

	// Геометрия PDF экспорта из конфига, пустые значения - дефолты
	geom := exportGeometry(appConfig.Export)
	pdfExporter := export.NewPDFExporter(geom, export.NewFpdfCanvasFactory(geom, appConfig.Export.FontFamily))

	engine := httpapi.NewRouter(appConfig, log, noteSvc, pdfExporter, events)

	// CORS поверх всего engine
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(appConfig.HTTP.CORSAllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		MaxAge:           appConfig.HTTP.CORSMaxAge,
		AllowCredentials: true,
	}).Handler(engine)

	server := &http.Server{
		Addr:         "0.0.0.0:" + strconv.Itoa(appConfig.Server.Port),
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(appConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(appConfig.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(appConfig.Server.IdleTimeout) * time.Second,
	}

	// Фоновый клинер корзины: первый проход сразу, далее по интервалу
	retentionDays := appConfig.Retention.Days
	if retentionDays <= 0 {
		retentionDays = 30
	}
	sweepHours := appConfig.Retention.SweepIntervalHours
	if sweepHours <= 0 {
		sweepHours = 24
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour
	interval := time.Duration(sweepHours) * time.Hour
	sw := sweeper.New(noteSvc, retention, interval, log)
	go sw.Run(ctx)

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Запуск HTTP сервера в горутине
	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Ожидание сигнала или ошибки
	select {
	case err := <-errChan:
		log.Fatal().Err(err).Msg("server error")
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("starting graceful shutdown")
	}

	// Останавливаем клинер и даем серверу время на завершение запросов
	cancel()

	shutdownTimeout := time.Duration(appConfig.Server.GracefulShutdownTimeout) * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown timeout, forcing stop")
	} else {
		log.Info().Msg("http server stopped gracefully")
	}

	log.Info().Msg("notes backend stopped")
}

// exportGeometry собирает геометрию страницы из конфига,
// незаполненные поля берутся из дефолтов
func exportGeometry(cfg *config.ConfigExport) export.Geometry {
	geom := export.DefaultGeometry()
	if cfg == nil {
		return geom
	}
	if cfg.PageWidth > 0 {
		geom.PageWidth = cfg.PageWidth
	}
	if cfg.PageHeight > 0 {
		geom.PageHeight = cfg.PageHeight
	}
	if cfg.Margin > 0 {
		geom.Margin = cfg.Margin
	}
	if cfg.LineHeight > 0 {
		geom.LineHeight = cfg.LineHeight
	}
	if cfg.TitleFontSize > 0 {
		geom.TitleFontSize = cfg.TitleFontSize
	}
	if cfg.BodyFontSize > 0 {
		geom.BodyFontSize = cfg.BodyFontSize
	}
	if cfg.MetaFontSize > 0 {
		geom.MetaFontSize = cfg.MetaFontSize
	}
	return geom
}
