package storage

import (
	"context"
	"errors"
	"time"

	"github.com/OmPreetham/we-backend/internal/models"
)

var (
	// ErrNotFound reports a missing post, board or parent.
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a concurrent update the store refused to apply.
	// Vote casting retries it; everything else surfaces it.
	ErrConflict = errors.New("conflicting concurrent update")
)

// PageArgs paginates list queries. Page is 1-based.
type PageArgs struct {
	Page  int
	Limit int
}

func (p PageArgs) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Store is the persistence contract for the discussion engine. All list
// queries return posts newest first.
type Store interface {
	// CreatePost persists a post. For replies (ParentID set) the parent's
	// comment count is incremented in the same atomic unit; a missing
	// parent yields ErrNotFound.
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	// ListPosts returns posts, optionally restricted to one board.
	ListPosts(ctx context.Context, boardID string, page PageArgs) ([]models.Post, error)
	// ListPostsByBoards returns posts from any of the given boards.
	ListPostsByBoards(ctx context.Context, boardIDs []string, page PageArgs) ([]models.Post, error)
	// ListPostsSince returns every post created at or after the cutoff.
	ListPostsSince(ctx context.Context, cutoff time.Time) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID string, repliesOnly bool, page PageArgs) ([]models.Post, error)
	// DeletePost hard-deletes the post and its vote and bookmark rows.
	// Replies are left in place pointing at the missing parent.
	DeletePost(ctx context.Context, id string) error
	// AddViews applies a commutative view-count increment.
	AddViews(ctx context.Context, id string, delta int) error

	// CastVote runs the per-(user,post) vote state machine as one atomic
	// unit: ledger row plus counter deltas. Same kind again toggles off,
	// the opposite kind retracts the old vote before applying the new one.
	CastVote(ctx context.Context, userID, postID string, kind models.VoteKind) (models.VoteState, error)
	GetVote(ctx context.Context, userID, postID string) (*models.Vote, error)
	// ListVotedPosts returns the posts a user has an active vote of the
	// given kind on, newest first.
	ListVotedPosts(ctx context.Context, userID string, kind models.VoteKind, page PageArgs) ([]models.Post, error)

	// ToggleBookmark flips the bookmark and reports the resulting state.
	ToggleBookmark(ctx context.Context, userID, postID string) (bool, error)
	IsBookmarked(ctx context.Context, userID, postID string) (bool, error)
	ListBookmarkedPosts(ctx context.Context, userID string, page PageArgs) ([]models.Post, error)

	CreateBoard(ctx context.Context, board *models.Board) error
	GetBoard(ctx context.Context, id string) (*models.Board, error)
	ListBoards(ctx context.Context) ([]models.Board, error)
	UpdateBoard(ctx context.Context, board *models.Board) error
	DeleteBoard(ctx context.Context, id string) error

	FollowBoard(ctx context.Context, userID, boardID string) error
	UnfollowBoard(ctx context.Context, userID, boardID string) error
	FollowedBoardIDs(ctx context.Context, userID string) ([]string, error)
	ListFollowedBoards(ctx context.Context, userID string) ([]models.Board, error)
}
