package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID        uuid.UUID
	UserID    string
	Username  string
	Message   string
	CreatedAt time.Time
}
