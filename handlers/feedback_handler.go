package handlers

import (
	"net/http"
	"strconv"

	"cpr-rag-backend/models"
	"cpr-rag-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FeedbackHandler handles HTTP requests for answer feedback
type FeedbackHandler struct {
	feedbackRepo *repository.FeedbackRepository
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackRepo *repository.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{feedbackRepo: feedbackRepo}
}

// CreateFeedbackRequest represents the request body for submitting feedback
type CreateFeedbackRequest struct {
	UserID    string   `json:"user_id"`
	Question  string   `json:"question" binding:"required"`
	Answer    string   `json:"answer" binding:"required"`
	Rating    string   `json:"rating" binding:"required"`
	Comment   *string  `json:"comment"`
	Citations []string `json:"citations"`
}

// CreateFeedback handles POST /api/feedback
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	rating := models.FeedbackRating(req.Rating)
	if rating != models.RatingPositive && rating != models.RatingNegative {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_RATING",
				"message": "rating must be 'positive' or 'negative'",
			},
		})
		return
	}

	var userID *uuid.UUID
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_USER_ID",
					"message": "Invalid user_id format",
				},
			})
			return
		}
		userID = &uid
	}

	fb := &models.Feedback{
		UserID:    userID,
		Question:  req.Question,
		Answer:    req.Answer,
		Rating:    rating,
		Comment:   req.Comment,
		Citations: req.Citations,
	}

	if err := h.feedbackRepo.Create(c.Request.Context(), fb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"feedback": fb,
	})
}

// ListFeedback handles GET /api/feedback
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := h.feedbackRepo.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"feedback": records,
	})
}
