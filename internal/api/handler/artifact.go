package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/logger"
	"github.com/monosoec/slidecast/internal/service"
)

// ArtifactHandler handles artifact listing and download endpoints.
type ArtifactHandler struct {
	artifacts *service.ArtifactService
}

// NewArtifactHandler creates a new artifact handler.
func NewArtifactHandler(artifacts *service.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifacts: artifacts}
}

// List handles GET /api/v1/jobs/:id/artifacts.
func (h *ArtifactHandler) List(c *gin.Context) {
	artifacts, err := h.artifacts.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artifacts)
}

// Download handles GET /api/v1/jobs/:id/artifacts/:artifactID/download and
// streams the stored object back to the caller.
func (h *ArtifactHandler) Download(c *gin.Context) {
	artifact, reader, err := h.artifacts.Open(c.Request.Context(), c.Param("id"), c.Param("artifactID"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	name := artifact.Metadata["filename"]
	if name == "" {
		name = artifact.ID
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", contentTypeFor(artifact.ArtifactType))
	c.Status(http.StatusOK)
	if written, err := io.Copy(c.Writer, reader); err != nil {
		// The status line is already on the wire; all we can do is record
		// the truncation.
		logger.FromContext(c.Request.Context()).WithFields(logger.Fields{
			logger.FieldJobID: artifact.JobID,
			logger.FieldSize:  written,
		}).WithError(err).Error("Artifact download aborted mid-stream")
	}
}

func contentTypeFor(artifactType string) string {
	switch artifactType {
	case domain.ArtifactTypeSlidesPDF:
		return "application/pdf"
	case domain.ArtifactTypeAudioZip:
		return "application/zip"
	case domain.ArtifactTypeVideoMP4:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
