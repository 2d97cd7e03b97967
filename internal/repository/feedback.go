package repository

import (
	"context"
	"time"

	"bravoo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type feedbackRow struct {
	ID        uuid.UUID `db:"feedback_id"`
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *Repository) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	query, args, err := squirrel.
		Insert("feedback").
		SetMap(map[string]interface{}{
			"feedback_id": fb.ID,
			"user_id":     fb.UserID,
			"username":    fb.Username,
			"message":     fb.Message,
			"created_at":  fb.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) ListFeedback(ctx context.Context, limit int) ([]*model.Feedback, error) {
	query, args, err := squirrel.
		Select("feedback_id", "user_id", "username", "message", "created_at").
		From("feedback").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []feedbackRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	items := make([]*model.Feedback, len(rows))
	for i, row := range rows {
		items[i] = &model.Feedback{
			ID:        row.ID,
			UserID:    row.UserID,
			Username:  row.Username,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		}
	}

	return items, nil
}
