package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestType string

const (
	QuestTypeDaily  QuestType = "daily"
	QuestTypeWeekly QuestType = "weekly"
)

type Quest struct {
	ID             uuid.UUID
	UserID         string
	Slot           int
	Type           QuestType
	TemplateID     string
	TitleKey       string
	DescriptionKey string
	Emoji          string
	GoldReward     int
	Completed      bool
	CompletedAt    *time.Time
	Rerolled       bool
	WeekYear       string
	Day            string
	CreatedAt      time.Time
}

type WeeklyProgress struct {
	WeekYear        string
	WeeklyTotal     int
	WeeklyCompleted int
	DailyTotal      int
	DailyCompleted  int
	StarAwarded     bool
}

type CompletionResult struct {
	Gold        int
	GoldEarned  int
	Stars       int
	Rank        string
	StarAwarded bool
}
