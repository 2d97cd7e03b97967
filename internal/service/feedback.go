package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bravoo/internal/model"

	"github.com/google/uuid"
)

const (
	maxFeedbackLen      = 500
	recentFeedbackLimit = 50
)

type FeedbackService struct {
	repo FeedbackRepository
	now  func() time.Time
}

func NewFeedbackService(repo FeedbackRepository, now func() time.Time) *FeedbackService {
	return &FeedbackService{
		repo: repo,
		now:  now,
	}
}

func (s *FeedbackService) Post(ctx context.Context, user *model.User, message string) (*model.Feedback, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" || len(trimmed) > maxFeedbackLen {
		return nil, ErrInvalidFeedback
	}

	fb := &model.Feedback{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  user.Username,
		Message:   trimmed,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreateFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return fb, nil
}

func (s *FeedbackService) Recent(ctx context.Context) ([]*model.Feedback, error) {
	items, err := s.repo.ListFeedback(ctx, recentFeedbackLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}
