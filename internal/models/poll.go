package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Poll and its options are created together and immutable afterwards, except
// for option vote counts and deletion. PasswordDigest is set iff the poll is
// private.
type Poll struct {
	ID             uint         `gorm:"primaryKey" json:"-"`
	PublicID       uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	UserID         uint         `gorm:"not null;index" json:"user_id"`
	User           User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Visibility     string       `gorm:"size:10;not null;default:'public'" json:"visibility"`
	PasswordDigest string       `json:"-"`
	Options        []PollOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (p *Poll) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}

func (p *Poll) IsOwner(userID uint) bool {
	return p.UserID == userID
}

type PollOption struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PollID    uint   `gorm:"not null;index" json:"poll_id"`
	Text      string `gorm:"not null" json:"text"`
	VoteCount int    `gorm:"not null;default:0" json:"vote_count"`
}
