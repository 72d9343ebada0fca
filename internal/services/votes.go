package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/storage"
)

const (
	voteAttempts     = 3
	voteRetryBackoff = 25 * time.Millisecond
)

// VoteService is the vote ledger front. The store applies each cast as one
// atomic state-machine transition; this layer only retries the casts the
// store refused because of a concurrent writer.
type VoteService struct {
	store storage.Store
}

func NewVoteService(store storage.Store) *VoteService {
	return &VoteService{store: store}
}

// Cast applies an up or down vote for (userID, postID) and returns the
// resulting state: the kind just applied, or "none" when the same kind
// toggled off. Conflicts are retried a bounded number of times before the
// call is reported unavailable; NotFound surfaces immediately.
func (s *VoteService) Cast(ctx context.Context, userID, postID string, kind models.VoteKind) (models.VoteState, error) {
	for attempt := 0; attempt < voteAttempts; attempt++ {
		state, err := s.store.CastVote(ctx, userID, postID, kind)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			return models.VoteStateNone, err
		}
		select {
		case <-ctx.Done():
			return models.VoteStateNone, ctx.Err()
		case <-time.After(voteRetryBackoff * time.Duration(attempt+1)):
		}
	}
	return models.VoteStateNone, fmt.Errorf("vote on post %s still conflicting after %d attempts: %w",
		postID, voteAttempts, ErrUnavailable)
}

// ListVoted returns the posts a user currently has a vote of the given
// kind on, newest first.
func (s *VoteService) ListVoted(ctx context.Context, userID string, kind models.VoteKind, page storage.PageArgs) ([]models.Post, error) {
	return s.store.ListVotedPosts(ctx, userID, kind, page)
}

// State reports the caller's current vote on a post.
func (s *VoteService) State(ctx context.Context, userID, postID string) (models.VoteState, error) {
	vote, err := s.store.GetVote(ctx, userID, postID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.VoteStateNone, nil
	}
	if err != nil {
		return models.VoteStateNone, err
	}
	return models.VoteState(vote.Kind), nil
}
