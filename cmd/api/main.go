package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/monosoec/slidecast/internal/api"
	"github.com/monosoec/slidecast/internal/config"
	"github.com/monosoec/slidecast/internal/logger"
	"github.com/monosoec/slidecast/internal/render"
	"github.com/monosoec/slidecast/internal/repository"
	"github.com/monosoec/slidecast/internal/service"
	"github.com/monosoec/slidecast/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.LogFile = cfg.Log.File
	logCfg.LogFileOnly = cfg.Log.FileOnly
	logCfg.MaxSizeMB = cfg.Log.MaxSizeMB
	logCfg.MaxBackups = cfg.Log.MaxBackups
	logCfg.MaxAgeDays = cfg.Log.MaxAgeDays
	logCfg.Compress = cfg.Log.Compress
	log := logger.New(logCfg)
	logger.SetDefault(log)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	jobRepo := repository.NewJobRepository(db)
	artifactRepo := repository.NewArtifactRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	billingRepo := repository.NewBillingUsageRepository(db)

	// Initialize artifact storage
	objectStorage, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	ctx := context.Background()
	if err := objectStorage.EnsureReady(ctx); err != nil {
		log.WithError(err).Fatal("Failed to prepare storage")
	}

	// Initialize render boundary
	workspace := service.NewWorkspace(cfg.Render.JobsDir)
	renderTool := render.NewTool(cfg.Render.Shell, cfg.Render.WorkerScript, cfg.Render.OutputFile)
	probe := render.NewProbe(cfg.Render.ProbeCommand)

	// Initialize services
	recorder := service.NewAuditRecorder(auditRepo, log)
	projectService := service.NewProjectService(projectRepo)
	jobService := service.NewJobService(projectService, jobRepo, artifactRepo, reviewRepo, auditRepo, billingRepo, recorder)
	uploadService := service.NewUploadService(jobRepo, artifactRepo, recorder, objectStorage, workspace)
	reviewService := service.NewReviewService(jobRepo, reviewRepo, recorder)
	artifactService := service.NewArtifactService(jobRepo, artifactRepo, objectStorage)
	renderOrchestrator := service.NewRenderOrchestrator(
		jobRepo,
		artifactRepo,
		billingRepo,
		recorder,
		objectStorage,
		renderTool,
		probe,
		workspace,
		log,
		cfg.Render.Workers,
	)

	// Setup router
	router := api.SetupRouter(
		projectService,
		jobService,
		uploadService,
		reviewService,
		artifactService,
		renderOrchestrator,
		&cfg.Server,
		log,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout. In-flight renders keep running in the
	// worker pool until the process exits; their jobs resume via a fresh
	// render trigger after restart.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
