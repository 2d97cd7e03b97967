package api

import (
	"errors"
	"net/http"
	"time"

	"bravoo/internal/model"
	"bravoo/internal/service"
	"bravoo/pkg/auth"
	"bravoo/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type questRoutes struct {
	qs  service.QuestServiceI
	hub *Hub
	a   *auth.TokenAuth
}

func NewQuestRoutes(handler *gin.RouterGroup, qs service.QuestServiceI, hub *Hub, a *auth.TokenAuth) {
	r := &questRoutes{qs: qs, hub: hub, a: a}
	h := handler.Group("/quests")
	h.Use(a.Middleware())
	{
		h.GET("", r.GetQuests)
		h.POST("/:quest_id/complete", r.CompleteQuest)
		h.POST("/:quest_id/reroll", r.RerollQuest)
	}
}

type QuestResponse struct {
	ID             string     `json:"id"`
	Slot           int        `json:"slot"`
	Type           string     `json:"type"`
	TemplateID     string     `json:"template_id"`
	TitleKey       string     `json:"title_key"`
	DescriptionKey string     `json:"description_key"`
	Emoji          string     `json:"emoji"`
	GoldReward     int        `json:"gold_reward"`
	Completed      bool       `json:"completed"`
	Rerolled       bool       `json:"rerolled"`
	WeekYear       string     `json:"week_year"`
	Day            string     `json:"day"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

type WeeklyProgressResponse struct {
	WeekYear        string `json:"week_year"`
	WeeklyTotal     int    `json:"weekly_total"`
	WeeklyCompleted int    `json:"weekly_completed"`
	DailyTotal      int    `json:"daily_total"`
	DailyCompleted  int    `json:"daily_completed"`
	StarAwarded     bool   `json:"star_awarded"`
}

func toQuestResponse(q *model.Quest) QuestResponse {
	return QuestResponse{
		ID:             q.ID.String(),
		Slot:           q.Slot,
		Type:           string(q.Type),
		TemplateID:     q.TemplateID,
		TitleKey:       q.TitleKey,
		DescriptionKey: q.DescriptionKey,
		Emoji:          q.Emoji,
		GoldReward:     q.GoldReward,
		Completed:      q.Completed,
		Rerolled:       q.Rerolled,
		WeekYear:       q.WeekYear,
		Day:            q.Day,
		CreatedAt:      q.CreatedAt,
		CompletedAt:    q.CompletedAt,
	}
}

// GetQuests tops up the caller's quest slots for the current period
// and returns the active set together with the weekly progress.
func (r *questRoutes) GetQuests(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		log.Error("authenticated user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	quests, err := r.qs.Generate(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate quests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get quests"})
		return
	}

	progress, err := r.qs.WeeklyProgress(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to get weekly progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get weekly progress"})
		return
	}

	out := make([]QuestResponse, len(quests))
	for i, q := range quests {
		out[i] = toQuestResponse(q)
	}

	c.JSON(http.StatusOK, gin.H{
		"quests": out,
		"progress": WeeklyProgressResponse{
			WeekYear:        progress.WeekYear,
			WeeklyTotal:     progress.WeeklyTotal,
			WeeklyCompleted: progress.WeeklyCompleted,
			DailyTotal:      progress.DailyTotal,
			DailyCompleted:  progress.DailyCompleted,
			StarAwarded:     progress.StarAwarded,
		},
	})
}

type CompleteQuestResponse struct {
	Gold        int    `json:"gold"`
	GoldEarned  int    `json:"gold_earned"`
	Stars       int    `json:"stars"`
	Rank        string `json:"rank"`
	StarAwarded bool   `json:"star_awarded"`
}

func (r *questRoutes) CompleteQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		log.Error("authenticated user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	questID, err := uuid.Parse(c.Param("quest_id"))
	if err != nil {
		log.Error("failed to parse quest_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest_id"})
		return
	}

	result, err := r.qs.Complete(c.Request.Context(), user.ID, questID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, service.ErrQuestAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "quest already completed"})
		default:
			log.Error("failed to complete quest", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete quest"})
		}
		return
	}

	r.hub.Notify(user.ID, Event{
		Type: "quest_completed",
		Payload: map[string]any{
			"quest_id":    questID.String(),
			"gold_earned": result.GoldEarned,
			"gold":        result.Gold,
		},
	})
	if result.StarAwarded {
		r.hub.Notify(user.ID, Event{
			Type: "star_awarded",
			Payload: map[string]any{
				"stars": result.Stars,
				"rank":  result.Rank,
			},
		})
	}

	c.JSON(http.StatusOK, CompleteQuestResponse{
		Gold:        result.Gold,
		GoldEarned:  result.GoldEarned,
		Stars:       result.Stars,
		Rank:        result.Rank,
		StarAwarded: result.StarAwarded,
	})
}

func (r *questRoutes) RerollQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		log.Error("authenticated user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	questID, err := uuid.Parse(c.Param("quest_id"))
	if err != nil {
		log.Error("failed to parse quest_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest_id"})
		return
	}

	quest, err := r.qs.Reroll(c.Request.Context(), user.ID, questID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, service.ErrQuestAlreadyCompleted),
			errors.Is(err, service.ErrQuestAlreadyRerolled),
			errors.Is(err, service.ErrNoTemplateAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "cannot reroll this quest"})
		default:
			log.Error("failed to reroll quest", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reroll quest"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"quest": toQuestResponse(quest)})
}
