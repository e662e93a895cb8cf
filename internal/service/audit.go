package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/monosoec/slidecast/internal/domain"
	"github.com/monosoec/slidecast/internal/logger"
	"github.com/monosoec/slidecast/internal/repository"
)

// Audit action tags. Every milestone in a job's life appends one entry.
const (
	AuditJobCreate      = "job.create"
	AuditInputsUpload   = "inputs.upload"
	AuditRenderRequest  = "render.request"
	AuditRenderStart    = "render.start"
	AuditRenderStage    = "render.stage"
	AuditRenderComplete = "render.complete"
	AuditRenderFailed   = "render.failed"
	AuditReviewApproved = "review.approved"
	AuditReviewRejected = "review.rejected"
)

// AuditRecorder appends human-readable timestamped entries to a job's
// narrative history and mirrors them to the structured log.
type AuditRecorder struct {
	audits *repository.AuditLogRepository
	logger *logger.Logger
}

// NewAuditRecorder creates a new AuditRecorder.
// Parameters:
//   - audits: audit log repository.
//   - log: base logger.
// Returns:
//   - *AuditRecorder: initialized recorder.
func NewAuditRecorder(audits *repository.AuditLogRepository, log *logger.Logger) *AuditRecorder {
	return &AuditRecorder{audits: audits, logger: log}
}

// Record appends one audit entry. Audit writes are best-effort: a failed
// insert is logged but never fails the operation that emitted it.
func (r *AuditRecorder) Record(ctx context.Context, jobID, action, detail string) {
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		JobID:     jobID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.audits.Create(ctx, entry); err != nil {
		r.logger.WithFields(logger.Fields{
			logger.FieldJobID: jobID,
			"action":          action,
		}).WithError(err).Error("Failed to write audit entry")
		return
	}

	r.logger.WithFields(logger.Fields{
		logger.FieldJobID: jobID,
		"action":          action,
	}).Info(detail)
}
