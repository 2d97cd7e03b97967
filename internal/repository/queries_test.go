package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopUsersQuery(t *testing.T) {
	query, args, err := topUsersQuery(50)

	assert.NoError(t, err)
	assert.Equal(t,
		"SELECT username, stars, gold, rank FROM users ORDER BY stars DESC, username ASC LIMIT 50",
		query)
	assert.Empty(t, args)
}

func TestDecrementStarQuery(t *testing.T) {
	query, args, err := decrementStarQuery("user-1")

	assert.NoError(t, err)
	assert.Equal(t,
		"UPDATE users SET stars = GREATEST(stars - 1, 0) WHERE id = $1 RETURNING stars",
		query)
	assert.Equal(t, []interface{}{"user-1"}, args)
}

func TestIncrementStarsQuery(t *testing.T) {
	query, args, err := incrementStarsQuery("user-1", 4)

	assert.NoError(t, err)
	assert.Equal(t,
		"UPDATE users SET stars = LEAST(stars + 1, $1) WHERE id = $2 RETURNING stars",
		query)
	assert.Equal(t, []interface{}{4, "user-1"}, args)
}

func TestMarkStarAwardedQuery(t *testing.T) {
	awardedAt := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	query, args, err := markStarAwardedQuery("user-1", "2026-W35", awardedAt)

	assert.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO weekly_tracking")
	assert.Contains(t, query, "ON CONFLICT (user_id, week_year) DO UPDATE")
	assert.Contains(t, query, "WHERE weekly_tracking.star_awarded = FALSE")
	assert.Equal(t, []interface{}{"user-1", "2026-W35", true, awardedAt}, args)
}
