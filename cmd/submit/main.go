package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/monosoec/slidecast/internal/config"
	"github.com/monosoec/slidecast/internal/logger"
	"github.com/monosoec/slidecast/internal/render"
	"github.com/monosoec/slidecast/internal/repository"
	"github.com/monosoec/slidecast/internal/service"
	"github.com/monosoec/slidecast/internal/storage"
)

// submit creates a render job from local input files without going through
// the HTTP API. Useful for backfills and local pipeline runs.
func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "slidecast-submit",
	})
	logger.SetDefault(appLogger)

	// Parse command line flags
	title := flag.String("title", "", "Job title")
	purpose := flag.String("purpose", "internal review", "What the video is for")
	tone := flag.String("tone", "neutral", "Narration tone")
	duration := flag.Int("duration", 300, "Target duration in seconds")
	projectID := flag.String("project", "", "Project ID; empty uses the default project")
	slidesPath := flag.String("slides", "", "Path to the slide PDF")
	audioPath := flag.String("audio", "", "Path to the narration audio zip")
	runRender := flag.Bool("render", false, "Run the render pipeline synchronously after intake")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *title == "" || *slidesPath == "" || *audioPath == "" {
		appLogger.Fatal("-title, -slides and -audio are required")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Rebuild the logger with the configured level, format, and file rotation.
	appLogger = logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "slidecast-submit",
		LogFile:     cfg.Log.File,
		LogFileOnly: cfg.Log.FileOnly,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Compress:    cfg.Log.Compress,
	})
	logger.SetDefault(appLogger)
	defer logger.Sync()

	appLogger.WithFields(logger.Fields{
		"title":  *title,
		"slides": *slidesPath,
		"audio":  *audioPath,
		"render": *runRender,
	}).Info("Starting job submission")

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
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
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := objectStorage.EnsureReady(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to prepare storage")
	}

	// Initialize services
	workspace := service.NewWorkspace(cfg.Render.JobsDir)
	recorder := service.NewAuditRecorder(auditRepo, appLogger)
	projectService := service.NewProjectService(projectRepo)
	jobService := service.NewJobService(projectService, jobRepo, artifactRepo, reviewRepo, auditRepo, billingRepo, recorder)
	uploadService := service.NewUploadService(jobRepo, artifactRepo, recorder, objectStorage, workspace)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	// Create the job
	detail, err := jobService.Create(ctx, *projectID, service.CreateJobInput{
		Title:                 *title,
		Purpose:               *purpose,
		Tone:                  *tone,
		TargetDurationSeconds: *duration,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to create job")
	}
	appLogger.WithField("job_id", detail.ID).Info("Job created")

	// Save inputs
	slides, err := os.Open(*slidesPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to open slide PDF")
	}
	defer slides.Close()

	audio, err := os.Open(*audioPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to open audio zip")
	}
	defer audio.Close()

	if err := uploadService.SaveInputs(ctx, detail.ID, slides, audio); err != nil {
		appLogger.WithError(err).Fatal("Failed to save inputs")
	}
	appLogger.WithField("job_id", detail.ID).Info("Inputs registered")

	if !*runRender {
		return
	}

	// Run the full pipeline in-process instead of handing off to the API
	// worker pool.
	renderTool := render.NewTool(cfg.Render.Shell, cfg.Render.WorkerScript, cfg.Render.OutputFile)
	probe := render.NewProbe(cfg.Render.ProbeCommand)
	orchestrator := service.NewRenderOrchestrator(
		jobRepo,
		artifactRepo,
		billingRepo,
		recorder,
		objectStorage,
		renderTool,
		probe,
		workspace,
		appLogger,
		1,
	)

	if err := orchestrator.RunRender(logger.SetJobID(ctx, detail.ID), detail.ID); err != nil {
		appLogger.WithError(err).Fatal("Render failed")
	}

	final, err := jobService.Detail(ctx, detail.ID)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to reload job")
	}
	appLogger.WithFields(logger.Fields{
		"job_id": final.ID,
		"status": final.Status,
	}).Info("Render completed")
}
