package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bravoo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Quest struct {
	ID             uuid.UUID  `db:"quest_id"`
	UserID         string     `db:"user_id"`
	Slot           int        `db:"slot"`
	Type           string     `db:"quest_type"`
	TemplateID     string     `db:"template_id"`
	TitleKey       string     `db:"title_key"`
	DescriptionKey string     `db:"description_key"`
	Emoji          string     `db:"emoji"`
	GoldReward     int        `db:"gold_reward"`
	Completed      bool       `db:"completed"`
	CompletedAt    *time.Time `db:"completed_at"`
	Rerolled       bool       `db:"rerolled"`
	WeekYear       string     `db:"week_year"`
	Day            string     `db:"day"`
	CreatedAt      time.Time  `db:"created_at"`
}

func (q *Quest) toModel() *model.Quest {
	return &model.Quest{
		ID:             q.ID,
		UserID:         q.UserID,
		Slot:           q.Slot,
		Type:           model.QuestType(q.Type),
		TemplateID:     q.TemplateID,
		TitleKey:       q.TitleKey,
		DescriptionKey: q.DescriptionKey,
		Emoji:          q.Emoji,
		GoldReward:     q.GoldReward,
		Completed:      q.Completed,
		CompletedAt:    q.CompletedAt,
		Rerolled:       q.Rerolled,
		WeekYear:       q.WeekYear,
		Day:            q.Day,
		CreatedAt:      q.CreatedAt,
	}
}

var questColumns = []string{
	"quest_id", "user_id", "slot", "quest_type", "template_id",
	"title_key", "description_key", "emoji", "gold_reward",
	"completed", "completed_at", "rerolled", "week_year", "day",
	"created_at",
}

func (r *Repository) selectQuests(ctx context.Context, pred interface{}, args ...interface{}) ([]*model.Quest, error) {
	query, qargs, err := squirrel.
		Select(questColumns...).
		From("quests").
		Where(pred, args...).
		OrderBy("slot ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []*Quest
	err = r.db.SelectContext(ctx, &rows, query, qargs...)
	if err != nil {
		return nil, err
	}

	quests := make([]*model.Quest, len(rows))
	for i, row := range rows {
		quests[i] = row.toModel()
	}

	return quests, nil
}

// ActiveQuests returns the user's incomplete quest instances ordered
// by slot.
func (r *Repository) ActiveQuests(ctx context.Context, userID string) ([]*model.Quest, error) {
	return r.selectQuests(ctx, squirrel.Eq{"user_id": userID, "completed": false})
}

// QuestsByWeekYear returns every instance, active or completed,
// assigned in the given ISO week.
func (r *Repository) QuestsByWeekYear(ctx context.Context, userID string, weekYear string) ([]*model.Quest, error) {
	return r.selectQuests(ctx, squirrel.Eq{"user_id": userID, "week_year": weekYear})
}

// QuestsByDay returns every instance assigned on the given calendar
// day.
func (r *Repository) QuestsByDay(ctx context.Context, userID string, day string) ([]*model.Quest, error) {
	return r.selectQuests(ctx, squirrel.Eq{"user_id": userID, "day": day})
}

func (r *Repository) QuestByID(ctx context.Context, userID string, questID uuid.UUID) (*model.Quest, error) {
	query, args, err := squirrel.
		Select(questColumns...).
		From("quests").
		Where(squirrel.Eq{"quest_id": questID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var quest Quest
	err = r.db.GetContext(ctx, &quest, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return quest.toModel(), nil
}

// ActiveTemplateIDs returns the template ids currently held by the
// user across incomplete instances.
func (r *Repository) ActiveTemplateIDs(ctx context.Context, userID string) ([]string, error) {
	query, args, err := squirrel.
		Select("COALESCE(array_agg(template_id), '{}')").
		From("quests").
		Where(squirrel.Eq{"user_id": userID, "completed": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids pq.StringArray
	err = r.db.GetContext(ctx, &ids, query, args...)
	if err != nil {
		return nil, err
	}

	return []string(ids), nil
}

func (r *Repository) CreateQuests(ctx context.Context, quests []*model.Quest) error {
	if len(quests) == 0 {
		return nil
	}

	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		builder := squirrel.
			Insert("quests").
			Columns(questColumns...)

		for _, q := range quests {
			builder = builder.Values(
				q.ID, q.UserID, q.Slot, string(q.Type), q.TemplateID,
				q.TitleKey, q.DescriptionKey, q.Emoji, q.GoldReward,
				q.Completed, q.CompletedAt, q.Rerolled, q.WeekYear, q.Day,
				q.CreatedAt,
			)
		}

		query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build quest insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert quests: %w", err)
		}

		return nil
	})
}

// CompleteQuest marks the quest completed and credits its gold reward
// to the owner in one transaction. The row is locked for the guard
// check so a concurrent completion of the same instance observes the
// flag.
func (r *Repository) CompleteQuest(ctx context.Context, userID string, questID uuid.UUID, day string, completedAt time.Time) (*model.Quest, error) {
	var quest Quest

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Select(questColumns...).
			From("quests").
			Where(squirrel.Eq{"quest_id": questID, "user_id": userID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		err = tx.GetContext(ctx, &quest, query, args...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if quest.Completed {
			return ErrQuestCompleted
		}

		updateQuery, updateArgs, err := squirrel.
			Update("quests").
			Set("completed", true).
			Set("completed_at", completedAt).
			Where(squirrel.Eq{"quest_id": questID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return err
		}

		userQuery, userArgs, err := squirrel.
			Update("users").
			Set("gold", squirrel.Expr("gold + ?", quest.GoldReward)).
			Set("last_active_day", day).
			Where(squirrel.Eq{"id": userID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, userQuery, userArgs...)
		if err != nil {
			return err
		}

		quest.Completed = true
		quest.CompletedAt = &completedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return quest.toModel(), nil
}

// RerollQuest overwrites the instance's template fields in place and
// sets the rerolled flag. The guard predicate keeps id and slot and
// refuses completed or already-rerolled instances even under a
// concurrent reroll.
func (r *Repository) RerollQuest(ctx context.Context, quest *model.Quest) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Update("quests").
			SetMap(map[string]interface{}{
				"template_id":     quest.TemplateID,
				"title_key":       quest.TitleKey,
				"description_key": quest.DescriptionKey,
				"emoji":           quest.Emoji,
				"gold_reward":     quest.GoldReward,
				"rerolled":        true,
			}).
			Where(squirrel.Eq{
				"quest_id":  quest.ID,
				"user_id":   quest.UserID,
				"completed": false,
				"rerolled":  false,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		return nil
	})
}

type periodProgressRow struct {
	WeeklyTotal     int `db:"weekly_total"`
	WeeklyCompleted int `db:"weekly_completed"`
	DailyTotal      int `db:"daily_total"`
	DailyCompleted  int `db:"daily_completed"`
}

// PeriodProgress counts instances and completions per type for one
// ISO week.
func (r *Repository) PeriodProgress(ctx context.Context, userID string, weekYear string) (*model.WeeklyProgress, error) {
	query, args, err := squirrel.
		Select(
			"COUNT(*) FILTER (WHERE quest_type = 'weekly') AS weekly_total",
			"COUNT(*) FILTER (WHERE quest_type = 'weekly' AND completed) AS weekly_completed",
			"COUNT(*) FILTER (WHERE quest_type = 'daily') AS daily_total",
			"COUNT(*) FILTER (WHERE quest_type = 'daily' AND completed) AS daily_completed",
		).
		From("quests").
		Where(squirrel.Eq{"user_id": userID, "week_year": weekYear}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row periodProgressRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		return nil, err
	}

	return &model.WeeklyProgress{
		WeekYear:        weekYear,
		WeeklyTotal:     row.WeeklyTotal,
		WeeklyCompleted: row.WeeklyCompleted,
		DailyTotal:      row.DailyTotal,
		DailyCompleted:  row.DailyCompleted,
	}, nil
}
