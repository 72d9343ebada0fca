package services

import (
	"context"
	"testing"

	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/storage"
	"github.com/OmPreetham/we-backend/internal/storage/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore refuses the first n casts with ErrConflict, then delegates.
type flakyStore struct {
	storage.Store
	failures int
	calls    int
}

func (s *flakyStore) CastVote(ctx context.Context, userID, postID string, kind models.VoteKind) (models.VoteState, error) {
	s.calls++
	if s.calls <= s.failures {
		return models.VoteStateNone, storage.ErrConflict
	}
	return s.Store.CastVote(ctx, userID, postID, kind)
}

func seedPost(t *testing.T, store storage.Store) *models.Post {
	t.Helper()
	ctx := context.Background()
	board := &models.Board{Title: "b", Description: "d", CreatorID: "u1"}
	require.NoError(t, store.CreateBoard(ctx, board))
	post := &models.Post{AuthorID: "u1", BoardID: board.ID, Path: models.RootPath, Content: "hi"}
	require.NoError(t, store.CreatePost(ctx, post))
	return post
}

func TestCastRetriesConflictsThenSucceeds(t *testing.T) {
	mem := inmemory.New()
	post := seedPost(t, mem)
	flaky := &flakyStore{Store: mem, failures: 2}
	svc := NewVoteService(flaky)

	state, err := svc.Cast(context.Background(), "u2", post.ID, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, models.VoteStateUp, state)
	assert.Equal(t, 3, flaky.calls)
}

func TestCastGivesUpAfterBoundedRetries(t *testing.T) {
	mem := inmemory.New()
	post := seedPost(t, mem)
	flaky := &flakyStore{Store: mem, failures: 100}
	svc := NewVoteService(flaky)

	_, err := svc.Cast(context.Background(), "u2", post.ID, models.VoteUp)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, voteAttempts, flaky.calls)
}

func TestCastDoesNotRetryNotFound(t *testing.T) {
	mem := inmemory.New()
	seedPost(t, mem)
	flaky := &flakyStore{Store: mem}
	svc := NewVoteService(flaky)

	_, err := svc.Cast(context.Background(), "u2", "missing", models.VoteUp)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, 1, flaky.calls)
}

func TestStateReportsNoneWithoutLedgerRow(t *testing.T) {
	mem := inmemory.New()
	post := seedPost(t, mem)
	svc := NewVoteService(mem)

	state, err := svc.State(context.Background(), "u2", post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteStateNone, state)

	_, err = svc.Cast(context.Background(), "u2", post.ID, models.VoteDown)
	require.NoError(t, err)

	state, err = svc.State(context.Background(), "u2", post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteStateDown, state)
}
