package api

import (
	"errors"
	"net/http"
	"time"

	"bravoo/internal/service"
	"bravoo/pkg/auth"
	"bravoo/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type feedbackRoutes struct {
	fs service.FeedbackServiceI
	a  *auth.TokenAuth
}

func NewFeedbackRoutes(handler *gin.RouterGroup, fs service.FeedbackServiceI, a *auth.TokenAuth) {
	r := &feedbackRoutes{fs: fs, a: a}
	h := handler.Group("/feedback")
	h.Use(a.Middleware())
	{
		h.GET("", r.ListFeedback)
		h.POST("", r.PostFeedback)
	}
}

type PostFeedbackRequest struct {
	Message string `json:"message"`
}

type FeedbackResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *feedbackRoutes) PostFeedback(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		log.Error("authenticated user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req PostFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fb, err := r.fs.Post(c.Request.Context(), user, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFeedback) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
			return
		}
		log.Error("failed to post feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post feedback"})
		return
	}

	c.JSON(http.StatusCreated, FeedbackResponse{
		ID:        fb.ID.String(),
		Username:  fb.Username,
		Message:   fb.Message,
		CreatedAt: fb.CreatedAt,
	})
}

func (r *feedbackRoutes) ListFeedback(c *gin.Context) {
	log := logger.Logger()

	items, err := r.fs.Recent(c.Request.Context())
	if err != nil {
		log.Error("failed to list feedback", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}

	out := make([]FeedbackResponse, len(items))
	for i, fb := range items {
		out[i] = FeedbackResponse{
			ID:        fb.ID.String(),
			Username:  fb.Username,
			Message:   fb.Message,
			CreatedAt: fb.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"feedback": out})
}
