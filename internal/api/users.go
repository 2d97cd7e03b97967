package api

import (
	"errors"
	"net/http"

	"bravoo/internal/service"
	"bravoo/pkg/auth"
	"bravoo/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us service.UserServiceI
	a  *auth.TokenAuth
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.TokenAuth) {
	r := &userRoutes{us: us, a: a}

	handler.POST("/auth", r.Auth)
	handler.GET("/leaderboard", r.GetLeaderboard)

	h := handler.Group("/users")
	h.Use(a.Middleware())
	{
		h.GET("/me", r.GetProfile)
	}
}

type AuthRequest struct {
	Username string `json:"username"`
}

type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Stars    int    `json:"stars"`
	Gold     int    `json:"gold"`
	Rank     string `json:"rank"`
	IsNew    bool   `json:"is_new"`
}

func (r *userRoutes) Auth(c *gin.Context) {
	log := logger.Logger()

	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, isNew, err := r.us.Auth(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 2-20 characters: letters, numbers, underscores"})
			return
		}
		log.Error("failed to authenticate user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}

	c.JSON(status, AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    user.Token,
		Stars:    user.Stars,
		Gold:     user.Gold,
		Rank:     user.Rank,
		IsNew:    isNew,
	})
}

type ProfileResponse struct {
	Username      string  `json:"username"`
	Stars         int     `json:"stars"`
	Gold          int     `json:"gold"`
	Rank          string  `json:"rank"`
	RankEmoji     string  `json:"rank_emoji"`
	RankColor     string  `json:"rank_color"`
	NextRank      *string `json:"next_rank,omitempty"`
	StarsToLegend int     `json:"stars_to_legend"`
	RemainingDays int     `json:"remaining_days"`
}

func (r *userRoutes) GetProfile(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		log.Error("authenticated user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	profile := r.us.Profile(user)

	out := ProfileResponse{
		Username:      profile.Username,
		Stars:         profile.Stars,
		Gold:          profile.Gold,
		Rank:          profile.Rank.Name,
		RankEmoji:     profile.Rank.Emoji,
		RankColor:     profile.Rank.Color,
		StarsToLegend: profile.StarsToLegend,
		RemainingDays: profile.RemainingDays,
	}
	if profile.NextRank != nil {
		out.NextRank = &profile.NextRank.Name
	}

	c.JSON(http.StatusOK, out)
}

func (r *userRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	entries, err := r.us.Leaderboard(c.Request.Context())
	if err != nil {
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	response := make([]gin.H, len(entries))
	for i, entry := range entries {
		response[i] = gin.H{
			"username": entry.Username,
			"stars":    entry.Stars,
			"gold":     entry.Gold,
			"rank":     entry.Rank,
		}
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": response})
}
