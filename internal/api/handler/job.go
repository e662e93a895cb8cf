package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monosoec/slidecast/internal/service"
)

// JobHandler handles render job endpoints.
type JobHandler struct {
	jobs     *service.JobService
	uploads  *service.UploadService
	renderer *service.RenderOrchestrator
}

// NewJobHandler creates a new job handler.
// Parameters:
//   - jobs: job service instance.
//   - uploads: upload intake service.
//   - renderer: render orchestrator.
// Returns:
//   - *JobHandler: initialized handler.
func NewJobHandler(jobs *service.JobService, uploads *service.UploadService, renderer *service.RenderOrchestrator) *JobHandler {
	return &JobHandler{jobs: jobs, uploads: uploads, renderer: renderer}
}

// CreateJobRequest represents the job creation request.
type CreateJobRequest struct {
	Title                 string `json:"title" binding:"required"`
	Purpose               string `json:"purpose" binding:"required"`
	Tone                  string `json:"tone" binding:"required"`
	TargetDurationSeconds int    `json:"target_duration_seconds" binding:"required,gt=0"`
}

// Create handles POST /api/v1/projects/:id/jobs.
func (h *JobHandler) Create(c *gin.Context) {
	h.create(c, c.Param("id"))
}

// CreateStandalone handles POST /api/v1/jobs. The job lands under the
// default project.
func (h *JobHandler) CreateStandalone(c *gin.Context) {
	h.create(c, "")
}

func (h *JobHandler) create(c *gin.Context, projectID string) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.jobs.Create(c.Request.Context(), projectID, service.CreateJobInput{
		Title:                 req.Title,
		Purpose:               req.Purpose,
		Tone:                  req.Tone,
		TargetDurationSeconds: req.TargetDurationSeconds,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListByProject handles GET /api/v1/projects/:id/jobs.
func (h *JobHandler) ListByProject(c *gin.Context) {
	details, err := h.jobs.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ListAll handles GET /api/v1/jobs.
func (h *JobHandler) ListAll(c *gin.Context) {
	details, err := h.jobs.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// Get handles GET /api/v1/jobs/:id. The response aggregates the job record
// with its artifacts, audit log, reviews, and billing usage.
func (h *JobHandler) Get(c *gin.Context) {
	detail, err := h.jobs.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Upload handles POST /api/v1/jobs/:id/upload: multipart slide PDF and
// audio zip. A render is triggered once the inputs are in place.
func (h *JobHandler) Upload(c *gin.Context) {
	jobID := c.Param("id")

	slidesHeader, err := c.FormFile("slides_pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slides_pdf file is required"})
		return
	}
	audioHeader, err := c.FormFile("audio_zip")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio_zip file is required"})
		return
	}

	slides, err := slidesHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer slides.Close()

	audio, err := audioHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer audio.Close()

	if err := h.uploads.SaveInputs(c.Request.Context(), jobID, slides, audio); err != nil {
		respondError(c, err)
		return
	}

	if err := h.renderer.Trigger(c.Request.Context(), jobID); err != nil {
		respondError(c, err)
		return
	}

	detail, err := h.jobs.Detail(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Render handles POST /api/v1/jobs/:id/render. The render runs in a
// background worker; this returns immediately with the current job state.
func (h *JobHandler) Render(c *gin.Context) {
	jobID := c.Param("id")

	if _, err := h.jobs.Get(c.Request.Context(), jobID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.renderer.Trigger(c.Request.Context(), jobID); err != nil {
		respondError(c, err)
		return
	}

	detail, err := h.jobs.Detail(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
