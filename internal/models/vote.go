package models

import (
	"time"
)

// Vote records a user's single vote on a poll. The composite unique index on
// (poll_id, user_id) is what enforces one-vote-per-user under concurrent
// requests; application-level checks are only a fast path.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PollID    uint      `gorm:"not null;uniqueIndex:idx_poll_voter" json:"poll_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_poll_voter" json:"user_id"`
	OptionID  uint      `gorm:"not null;index" json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}
