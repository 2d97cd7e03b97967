package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bravoo/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type User struct {
	ID            string    `db:"id"`
	Username      string    `db:"username"`
	Token         string    `db:"token"`
	Stars         int       `db:"stars"`
	Gold          int       `db:"gold"`
	Rank          string    `db:"rank"`
	LastActiveDay *string   `db:"last_active_day"`
	CreatedAt     time.Time `db:"created_at"`
}

type leaderboardRow struct {
	Username string `db:"username"`
	Stars    int    `db:"stars"`
	Gold     int    `db:"gold"`
	Rank     string `db:"rank"`
}

func (u *User) toModel() *model.User {
	return &model.User{
		ID:            u.ID,
		Username:      u.Username,
		Token:         u.Token,
		Stars:         u.Stars,
		Gold:          u.Gold,
		Rank:          u.Rank,
		LastActiveDay: u.LastActiveDay,
		CreatedAt:     u.CreatedAt,
	}
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"id":              user.ID,
			"username":        user.Username,
			"token":           user.Token,
			"stars":           user.Stars,
			"gold":            user.Gold,
			"rank":            user.Rank,
			"last_active_day": user.LastActiveDay,
			"created_at":      user.CreatedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) getUserBy(ctx context.Context, pred squirrel.Eq) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user.toModel(), nil
}

func (r *Repository) UserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"username": username})
}

func (r *Repository) UserByToken(ctx context.Context, token string) (*model.User, error) {
	return r.getUserBy(ctx, squirrel.Eq{"token": token})
}

func (r *Repository) UpdateUserRank(ctx context.Context, userID string, rank string) error {
	query, args, err := squirrel.
		Update("users").
		Set("rank", rank).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
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
}

// topUsersQuery orders by stars descending with the username as the
// deterministic tie-break.
func topUsersQuery(limit int) (string, []interface{}, error) {
	return squirrel.
		Select("username", "stars", "gold", "rank").
		From("users").
		OrderBy("stars DESC", "username ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *Repository) TopUsers(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	query, args, err := topUsersQuery(limit)
	if err != nil {
		return nil, err
	}

	var rows []leaderboardRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = &model.LeaderboardEntry{
			Username: row.Username,
			Stars:    row.Stars,
			Gold:     row.Gold,
			Rank:     row.Rank,
		}
	}

	return entries, nil
}

// ResetAllProgress zeroes every user's stars and resets the rank cache
// to the base tier. Returns the number of affected users.
func (r *Repository) ResetAllProgress(ctx context.Context, baseRank string) (int64, error) {
	query, args, err := squirrel.
		Update("users").
		Set("stars", 0).
		Set("rank", baseRank).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// DecayCandidates returns ids of users holding stars who completed no
// quest on the given day.
func (r *Repository) DecayCandidates(ctx context.Context, day string) ([]string, error) {
	query, args, err := squirrel.
		Select("u.id").
		From("users u").
		Where(squirrel.Gt{"u.stars": 0}).
		Where("u.last_active_day IS NOT NULL").
		Where(squirrel.Expr(
			`NOT EXISTS (
				SELECT 1 FROM quests q
				WHERE q.user_id = u.id
				AND q.completed = TRUE
				AND q.completed_at::date = ?::date
			)`, day)).
		OrderBy("u.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []string
	err = r.db.SelectContext(ctx, &ids, query, args...)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// decrementStarQuery clamps the deduction at the zero floor.
func decrementStarQuery(userID string) (string, []interface{}, error) {
	return squirrel.
		Update("users").
		Set("stars", squirrel.Expr("GREATEST(stars - 1, 0)")).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING stars").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// DecrementStar takes one star from the user, never dropping below
// zero, and returns the new star count.
func (r *Repository) DecrementStar(ctx context.Context, userID string) (int, error) {
	var stars int
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := decrementStarQuery(userID)
		if err != nil {
			return err
		}

		err = tx.GetContext(ctx, &stars, query, args...)
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
