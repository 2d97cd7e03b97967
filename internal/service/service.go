package service

import (
	"context"
	"errors"
	"time"

	"bravoo/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidUsername       = errors.New("username must be 2-20 letters, digits or underscores")
	ErrQuestNotFound         = errors.New("quest not found")
	ErrQuestAlreadyCompleted = errors.New("quest already completed")
	ErrQuestAlreadyRerolled  = errors.New("quest already rerolled")
	ErrNoTemplateAvailable   = errors.New("no eligible quest template available")
	ErrInvalidFeedback       = errors.New("feedback message is empty or too long")
)

type Service struct {
	*UserService
	*QuestService
	*MaintenanceService
	*FeedbackService
}

func NewService(users *UserService, quests *QuestService, maintenance *MaintenanceService, feedback *FeedbackService) *Service {
	return &Service{
		UserService:        users,
		QuestService:       quests,
		MaintenanceService: maintenance,
		FeedbackService:    feedback,
	}
}

type UserServiceI interface {
	Auth(ctx context.Context, username string) (*model.User, bool, error)
	UserByToken(ctx context.Context, token string) (*model.User, error)
	Profile(user *model.User) *Profile
	Leaderboard(ctx context.Context) ([]*model.LeaderboardEntry, error)
}

type QuestServiceI interface {
	Generate(ctx context.Context, userID string) ([]*model.Quest, error)
	Complete(ctx context.Context, userID string, questID uuid.UUID) (*model.CompletionResult, error)
	Reroll(ctx context.Context, userID string, questID uuid.UUID) (*model.Quest, error)
	WeeklyProgress(ctx context.Context, userID string) (*model.WeeklyProgress, error)
}

type MaintenanceServiceI interface {
	RunDailyCheck(ctx context.Context) (*DailyCheckReport, error)
}

type FeedbackServiceI interface {
	Post(ctx context.Context, user *model.User, message string) (*model.Feedback, error)
	Recent(ctx context.Context) ([]*model.Feedback, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	UserByID(ctx context.Context, id string) (*model.User, error)
	UserByUsername(ctx context.Context, username string) (*model.User, error)
	UserByToken(ctx context.Context, token string) (*model.User, error)
	TopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)
}

type QuestRepository interface {
	ActiveQuests(ctx context.Context, userID string) ([]*model.Quest, error)
	QuestsByWeekYear(ctx context.Context, userID string, weekYear string) ([]*model.Quest, error)
	QuestsByDay(ctx context.Context, userID string, day string) ([]*model.Quest, error)
	QuestByID(ctx context.Context, userID string, questID uuid.UUID) (*model.Quest, error)
	ActiveTemplateIDs(ctx context.Context, userID string) ([]string, error)
	CreateQuests(ctx context.Context, quests []*model.Quest) error
	CompleteQuest(ctx context.Context, userID string, questID uuid.UUID, day string, completedAt time.Time) (*model.Quest, error)
	RerollQuest(ctx context.Context, quest *model.Quest) error
	PeriodProgress(ctx context.Context, userID string, weekYear string) (*model.WeeklyProgress, error)
	StarAwarded(ctx context.Context, userID string, weekYear string) (bool, error)
	AwardWeeklyStar(ctx context.Context, userID string, weekYear string, maxStars int, awardedAt time.Time) (int, error)
	UpdateUserRank(ctx context.Context, userID string, rank string) error
	UserByID(ctx context.Context, id string) (*model.User, error)
}

type MaintenanceRepository interface {
	ResetAllProgress(ctx context.Context, baseRank string) (int64, error)
	DecayCandidates(ctx context.Context, day string) ([]string, error)
	DecrementStar(ctx context.Context, userID string) (int, error)
	UpdateUserRank(ctx context.Context, userID string, rank string) error
}

type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, fb *model.Feedback) error
	ListFeedback(ctx context.Context, limit int) ([]*model.Feedback, error)
}
