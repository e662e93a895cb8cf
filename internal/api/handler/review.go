package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monosoec/slidecast/internal/service"
)

// ReviewHandler handles review decision endpoints.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// SubmitReviewRequest represents a review decision submission.
type SubmitReviewRequest struct {
	Decision string `json:"decision" binding:"required"`
	Comment  string `json:"comment"`
}

// Submit handles POST /api/v1/jobs/:id/reviews.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.reviews.Submit(c.Request.Context(), c.Param("id"), req.Decision, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
