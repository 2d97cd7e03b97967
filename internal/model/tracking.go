package model

import "time"

// WeeklyTracking is the at-most-once star award record for one
// (user, ISO week) period.
type WeeklyTracking struct {
	UserID      string
	WeekYear    string
	StarAwarded bool
	AwardedAt   *time.Time
}
