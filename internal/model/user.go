package model

import "time"

type User struct {
	ID            string
	Username      string
	Token         string
	Stars         int
	Gold          int
	Rank          string
	LastActiveDay *string
	CreatedAt     time.Time
}

type LeaderboardEntry struct {
	Username string
	Stars    int
	Gold     int
	Rank     string
}
