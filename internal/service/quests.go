package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"bravoo/internal/model"
	"bravoo/internal/repository"

	"github.com/google/uuid"
)

const (
	// MaxSlots is the number of concurrent quest positions per user.
	MaxSlots = 4
	// weeklySlots caps how many weekly quests one assignment fills.
	weeklySlots = 3
	// minWeeklyForStar is the weekly-instance floor for the star rule.
	minWeeklyForStar = 3
)

type QuestService struct {
	repo QuestRepository
	rng  *rand.Rand
	now  func() time.Time
}

func NewQuestService(repo QuestRepository, rng *rand.Rand, now func() time.Time) *QuestService {
	return &QuestService{
		repo: repo,
		rng:  rng,
		now:  now,
	}
}

// Generate tops up the user's quest slots for the current period: up
// to three weekly quests if the ISO week has none yet (counting
// completed ones, so a finished week is not re-assigned), then one
// daily quest if the calendar day has none. Skips silently when no
// free slot or eligible template remains. Returns the active set plus
// anything just created, ordered by slot.
func (s *QuestService) Generate(ctx context.Context, userID string) ([]*model.Quest, error) {
	now := s.now().UTC()
	weekYear := WeekYearOf(now)
	day := DayKeyOf(now)

	active, err := s.repo.ActiveQuests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quests: %w", err)
	}

	weekQuests, err := s.repo.QuestsByWeekYear(ctx, userID, weekYear)
	if err != nil {
		return nil, fmt.Errorf("failed to get quests for week %s: %w", weekYear, err)
	}

	free := freeSlots(active)
	held := make(map[string]struct{}, len(active))
	for _, q := range active {
		held[q.TemplateID] = struct{}{}
	}

	var created []*model.Quest

	if !hasQuestOfType(weekQuests, model.QuestTypeWeekly) {
		exclude := make(map[string]struct{}, len(weekQuests)+len(held))
		for _, q := range weekQuests {
			exclude[q.TemplateID] = struct{}{}
		}
		for id := range held {
			exclude[id] = struct{}{}
		}

		for _, tmpl := range pickTemplates(s.rng, WeeklyTemplates, weeklySlots, exclude) {
			if len(free) == 0 {
				break
			}
			q := newQuest(userID, free[0], tmpl, weekYear, day, now)
			free = free[1:]
			held[tmpl.ID] = struct{}{}
			created = append(created, q)
		}
	}

	dayQuests, err := s.repo.QuestsByDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get quests for day %s: %w", day, err)
	}

	if !hasQuestOfType(dayQuests, model.QuestTypeDaily) && len(free) > 0 {
		picks := pickTemplates(s.rng, DailyTemplates, 1, held)
		if len(picks) == 1 {
			created = append(created, newQuest(userID, free[0], picks[0], weekYear, day, now))
		}
	}

	if len(created) > 0 {
		if err := s.repo.CreateQuests(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to create quests: %w", err)
		}
	}

	quests := append(active, created...)
	sort.Slice(quests, func(i, j int) bool { return quests[i].Slot < quests[j].Slot })

	return quests, nil
}

// Complete marks the quest done, credits its gold and evaluates the
// weekly star condition. An unknown or foreign quest id maps to
// ErrQuestNotFound; a second completion attempt maps to
// ErrQuestAlreadyCompleted and mutates nothing.
func (s *QuestService) Complete(ctx context.Context, userID string, questID uuid.UUID) (*model.CompletionResult, error) {
	now := s.now().UTC()

	quest, err := s.repo.CompleteQuest(ctx, userID, questID, DayKeyOf(now), now)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrQuestNotFound
		case errors.Is(err, repository.ErrQuestCompleted):
			return nil, ErrQuestAlreadyCompleted
		default:
			return nil, fmt.Errorf("failed to complete quest: %w", err)
		}
	}

	starAwarded, err := s.evaluateWeeklyStar(ctx, userID, quest.WeekYear, now)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &model.CompletionResult{
		Gold:        user.Gold,
		GoldEarned:  quest.GoldReward,
		Stars:       user.Stars,
		Rank:        user.Rank,
		StarAwarded: starAwarded,
	}, nil
}

// evaluateWeeklyStar awards at most one star per (user, week): all
// weekly quests of the period done (and at least three of them), plus
// all daily quests of the period done (at least one). The tracking
// flag is re-checked inside the award transaction, so losing a race
// here only downgrades the result to "no award".
func (s *QuestService) evaluateWeeklyStar(ctx context.Context, userID string, weekYear string, now time.Time) (bool, error) {
	awarded, err := s.repo.StarAwarded(ctx, userID, weekYear)
	if err != nil {
		return false, fmt.Errorf("failed to check weekly tracking: %w", err)
	}
	if awarded {
		return false, nil
	}

	progress, err := s.repo.PeriodProgress(ctx, userID, weekYear)
	if err != nil {
		return false, fmt.Errorf("failed to get period progress: %w", err)
	}
	if !starConditionMet(progress) {
		return false, nil
	}

	stars, err := s.repo.AwardWeeklyStar(ctx, userID, weekYear, MaxStars, now)
	if err != nil {
		if errors.Is(err, repository.ErrStarAwarded) {
			return false, nil
		}
		return false, fmt.Errorf("failed to award weekly star: %w", err)
	}

	if err := s.repo.UpdateUserRank(ctx, userID, RankFor(stars).Name); err != nil {
		return false, fmt.Errorf("failed to update rank: %w", err)
	}

	return true, nil
}

func starConditionMet(p *model.WeeklyProgress) bool {
	return p.WeeklyTotal >= minWeeklyForStar &&
		p.WeeklyCompleted == p.WeeklyTotal &&
		p.DailyTotal >= 1 &&
		p.DailyCompleted == p.DailyTotal
}

// Reroll replaces the instance's template with a random one of the
// same category, excluding everything the user currently holds. Id and
// slot are preserved; a quest can be rerolled once.
func (s *QuestService) Reroll(ctx context.Context, userID string, questID uuid.UUID) (*model.Quest, error) {
	quest, err := s.repo.QuestByID(ctx, userID, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	if quest.Completed {
		return nil, ErrQuestAlreadyCompleted
	}
	if quest.Rerolled {
		return nil, ErrQuestAlreadyRerolled
	}

	heldIDs, err := s.repo.ActiveTemplateIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get held templates: %w", err)
	}
	exclude := make(map[string]struct{}, len(heldIDs))
	for _, id := range heldIDs {
		exclude[id] = struct{}{}
	}

	pool := DailyTemplates
	if quest.Type == model.QuestTypeWeekly {
		pool = WeeklyTemplates
	}

	picks := pickTemplates(s.rng, pool, 1, exclude)
	if len(picks) == 0 {
		return nil, ErrNoTemplateAvailable
	}

	tmpl := picks[0]
	quest.TemplateID = tmpl.ID
	quest.TitleKey = tmpl.TitleKey
	quest.DescriptionKey = tmpl.DescriptionKey
	quest.Emoji = tmpl.Emoji
	quest.GoldReward = tmpl.GoldReward

	err = s.repo.RerollQuest(ctx, quest)
	if err != nil {
		// The guarded update matched no row: the quest was completed
		// or rerolled between the read and the write.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestAlreadyRerolled
		}
		return nil, fmt.Errorf("failed to reroll quest: %w", err)
	}
	quest.Rerolled = true

	return quest, nil
}

// WeeklyProgress reports the current week's totals and whether the
// star has been granted. Pure read.
func (s *QuestService) WeeklyProgress(ctx context.Context, userID string) (*model.WeeklyProgress, error) {
	weekYear := WeekYearOf(s.now().UTC())

	progress, err := s.repo.PeriodProgress(ctx, userID, weekYear)
	if err != nil {
		return nil, fmt.Errorf("failed to get period progress: %w", err)
	}

	awarded, err := s.repo.StarAwarded(ctx, userID, weekYear)
	if err != nil {
		return nil, fmt.Errorf("failed to check weekly tracking: %w", err)
	}
	progress.StarAwarded = awarded

	return progress, nil
}

func newQuest(userID string, slot int, tmpl QuestTemplate, weekYear string, day string, now time.Time) *model.Quest {
	return &model.Quest{
		ID:             uuid.New(),
		UserID:         userID,
		Slot:           slot,
		Type:           tmpl.Type,
		TemplateID:     tmpl.ID,
		TitleKey:       tmpl.TitleKey,
		DescriptionKey: tmpl.DescriptionKey,
		Emoji:          tmpl.Emoji,
		GoldReward:     tmpl.GoldReward,
		WeekYear:       weekYear,
		Day:            day,
		CreatedAt:      now,
	}
}

func hasQuestOfType(quests []*model.Quest, t model.QuestType) bool {
	for _, q := range quests {
		if q.Type == t {
			return true
		}
	}
	return false
}

func freeSlots(active []*model.Quest) []int {
	taken := make(map[int]bool, len(active))
	for _, q := range active {
		taken[q.Slot] = true
	}

	var free []int
	for slot := 0; slot < MaxSlots; slot++ {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free
}
