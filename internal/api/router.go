package api

import (
	"github.com/gin-gonic/gin"
	"github.com/monosoec/slidecast/internal/api/handler"
	"github.com/monosoec/slidecast/internal/api/middleware"
	"github.com/monosoec/slidecast/internal/config"
	"github.com/monosoec/slidecast/internal/logger"
	"github.com/monosoec/slidecast/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	projects *service.ProjectService,
	jobs *service.JobService,
	uploads *service.UploadService,
	reviews *service.ReviewService,
	artifacts *service.ArtifactService,
	renderer *service.RenderOrchestrator,
	cfg *config.ServerConfig,
	log *logger.Logger,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	projectHandler := handler.NewProjectHandler(projects)
	jobHandler := handler.NewJobHandler(jobs, uploads, renderer)
	reviewHandler := handler.NewReviewHandler(reviews)
	artifactHandler := handler.NewArtifactHandler(artifacts)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Projects
		v1.POST("/projects", projectHandler.Create)
		v1.GET("/projects", projectHandler.List)
		v1.GET("/projects/:id", projectHandler.Get)
		v1.POST("/projects/:id/jobs", jobHandler.Create)
		v1.GET("/projects/:id/jobs", jobHandler.ListByProject)

		// Jobs
		v1.POST("/jobs", jobHandler.CreateStandalone)
		v1.GET("/jobs", jobHandler.ListAll)
		v1.GET("/jobs/:id", jobHandler.Get)
		v1.POST("/jobs/:id/upload", jobHandler.Upload)
		v1.POST("/jobs/:id/render", jobHandler.Render)

		// Reviews
		v1.POST("/jobs/:id/reviews", reviewHandler.Submit)

		// Artifacts
		v1.GET("/jobs/:id/artifacts", artifactHandler.List)
		v1.GET("/jobs/:id/artifacts/:artifactID/download", artifactHandler.Download)
	}

	return r
}
