package mocks

import (
	"context"
	"time"

	"bravoo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) ActiveQuests(ctx context.Context, userID string) ([]*model.Quest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) QuestsByWeekYear(ctx context.Context, userID string, weekYear string) ([]*model.Quest, error) {
	args := m.Called(ctx, userID, weekYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) QuestsByDay(ctx context.Context, userID string, day string) ([]*model.Quest, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) QuestByID(ctx context.Context, userID string, questID uuid.UUID) (*model.Quest, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) ActiveTemplateIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestRepository) CreateQuests(ctx context.Context, quests []*model.Quest) error {
	args := m.Called(ctx, quests)
	return args.Error(0)
}

func (m *MockQuestRepository) CompleteQuest(ctx context.Context, userID string, questID uuid.UUID, day string, completedAt time.Time) (*model.Quest, error) {
	args := m.Called(ctx, userID, questID, day, completedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quest), args.Error(1)
}

func (m *MockQuestRepository) RerollQuest(ctx context.Context, quest *model.Quest) error {
	args := m.Called(ctx, quest)
	return args.Error(0)
}

func (m *MockQuestRepository) PeriodProgress(ctx context.Context, userID string, weekYear string) (*model.WeeklyProgress, error) {
	args := m.Called(ctx, userID, weekYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeeklyProgress), args.Error(1)
}

func (m *MockQuestRepository) StarAwarded(ctx context.Context, userID string, weekYear string) (bool, error) {
	args := m.Called(ctx, userID, weekYear)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestRepository) AwardWeeklyStar(ctx context.Context, userID string, weekYear string, maxStars int, awardedAt time.Time) (int, error) {
	args := m.Called(ctx, userID, weekYear, maxStars, awardedAt)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestRepository) UpdateUserRank(ctx context.Context, userID string, rank string) error {
	args := m.Called(ctx, userID, rank)
	return args.Error(0)
}

func (m *MockQuestRepository) UserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UserByToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) TopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Error(1)
}

type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) ResetAllProgress(ctx context.Context, baseRank string) (int64, error) {
	args := m.Called(ctx, baseRank)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceRepository) DecayCandidates(ctx context.Context, day string) ([]string, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMaintenanceRepository) DecrementStar(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockMaintenanceRepository) UpdateUserRank(ctx context.Context, userID string, rank string) error {
	args := m.Called(ctx, userID, rank)
	return args.Error(0)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListFeedback(ctx context.Context, limit int) ([]*model.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Feedback), args.Error(1)
}
