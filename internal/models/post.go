package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RootPath is the materialized path of a post with no parent.
const RootPath = ","

type Post struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	AuthorID string  `gorm:"size:36;not null;index" json:"author_id"`
	Username string  `gorm:"not null" json:"username"`
	BoardID  string  `gorm:"size:36;not null;index" json:"board_id"`
	ParentID *string `gorm:"size:36;index" json:"parent_id"`

	// Path lists the ancestor ids root-to-parent, each terminated by a
	// comma. A root post holds ",". A post's own id only ever appears in
	// its children's paths.
	Path    string `gorm:"not null;default:','" json:"path"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Denormalized counters, written only through storage-level atomic
	// updates (vote casting, reply creation, view recording).
	UpvoteCount   int `gorm:"not null;default:0" json:"upvote_count"`
	DownvoteCount int `gorm:"not null;default:0" json:"downvote_count"`
	CommentCount  int `gorm:"not null;default:0" json:"comment_count"`
	ViewCount     int `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Path == "" {
		p.Path = RootPath
	}
	return nil
}

// IsRoot reports whether the post starts a thread.
func (p *Post) IsRoot() bool {
	return p.ParentID == nil
}
