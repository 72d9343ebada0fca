package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteKind string

const (
	VoteUp   VoteKind = "up"
	VoteDown VoteKind = "down"
)

// VoteState is the resolved per-user state for a post after a cast:
// the active vote kind, or "none" when the cast toggled the vote off.
type VoteState string

const (
	VoteStateNone VoteState = "none"
	VoteStateUp   VoteState = VoteState(VoteUp)
	VoteStateDown VoteState = VoteState(VoteDown)
)

// Vote is the ledger row. At most one per (user, post); the unique index
// is what makes concurrent double-inserts fail instead of double-count.
type Vote struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_vote_user_post" json:"user_id"`
	PostID    string    `gorm:"size:36;not null;index;uniqueIndex:idx_vote_user_post" json:"post_id"`
	Kind      VoteKind  `gorm:"size:4;not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
