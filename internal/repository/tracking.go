package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bravoo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type weeklyTrackingRow struct {
	UserID      string     `db:"user_id"`
	WeekYear    string     `db:"week_year"`
	StarAwarded bool       `db:"star_awarded"`
	AwardedAt   *time.Time `db:"awarded_at"`
}

func (t *weeklyTrackingRow) toModel() *model.WeeklyTracking {
	return &model.WeeklyTracking{
		UserID:      t.UserID,
		WeekYear:    t.WeekYear,
		StarAwarded: t.StarAwarded,
		AwardedAt:   t.AwardedAt,
	}
}

// WeeklyTrackingFor returns the star award record for one (user, week)
// period, or ErrNotFound if the week has no record yet.
func (r *Repository) WeeklyTrackingFor(ctx context.Context, userID string, weekYear string) (*model.WeeklyTracking, error) {
	query, args, err := squirrel.
		Select("user_id", "week_year", "star_awarded", "awarded_at").
		From("weekly_tracking").
		Where(squirrel.Eq{"user_id": userID, "week_year": weekYear}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row weeklyTrackingRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return row.toModel(), nil
}

// StarAwarded reports whether the star for the given week has already
// been granted. A missing tracking row means it has not.
func (r *Repository) StarAwarded(ctx context.Context, userID string, weekYear string) (bool, error) {
	tracking, err := r.WeeklyTrackingFor(ctx, userID, weekYear)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return tracking.StarAwarded, nil
}

// markStarAwardedQuery sets the tracking flag only if it is not set
// yet; zero affected rows means the week's star was already granted.
func markStarAwardedQuery(userID string, weekYear string, awardedAt time.Time) (string, []interface{}, error) {
	return squirrel.
		Insert("weekly_tracking").
		Columns("user_id", "week_year", "star_awarded", "awarded_at").
		Values(userID, weekYear, true, awardedAt).
		Suffix(`ON CONFLICT (user_id, week_year) DO UPDATE
			SET star_awarded = TRUE, awarded_at = EXCLUDED.awarded_at
			WHERE weekly_tracking.star_awarded = FALSE`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// incrementStarsQuery clamps the grant at the star cap.
func incrementStarsQuery(userID string, maxStars int) (string, []interface{}, error) {
	return squirrel.
		Update("users").
		Set("stars", squirrel.Expr("LEAST(stars + 1, ?)", maxStars)).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING stars").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// AwardWeeklyStar performs the at-most-once star grant for one
// (user, week) period: a conditional upsert of the tracking flag and
// the clamped star increment run in a single transaction, so repeated
// or concurrent invocations can award at most one star. Returns the
// user's new star count, or ErrStarAwarded if the flag was already
// set.
func (r *Repository) AwardWeeklyStar(ctx context.Context, userID string, weekYear string, maxStars int, awardedAt time.Time) (int, error) {
	var stars int

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := markStarAwardedQuery(userID, weekYear, awardedAt)
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
			return ErrStarAwarded
		}

		updateQuery, updateArgs, err := incrementStarsQuery(userID, maxStars)
		if err != nil {
			return err
		}

		err = tx.GetContext(ctx, &stars, updateQuery, updateArgs...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return stars, nil
}
