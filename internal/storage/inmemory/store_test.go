package inmemory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/storage"
	"github.com/OmPreetham/we-backend/internal/threads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store with one board and one root post.
func newTestStore(t *testing.T) (*Store, *models.Board, *models.Post) {
	t.Helper()
	store := New()
	ctx := context.Background()

	board := &models.Board{Title: "general", Description: "anything goes", CreatorID: "user-1"}
	require.NoError(t, store.CreateBoard(ctx, board))

	post := &models.Post{
		AuthorID: "user-1",
		Username: "alice",
		BoardID:  board.ID,
		Path:     models.RootPath,
		Content:  "first",
	}
	require.NoError(t, store.CreatePost(ctx, post))
	return store, board, post
}

func TestCreateReplyBuildsPathAndBumpsParent(t *testing.T) {
	store, _, root := newTestStore(t)
	ctx := context.Background()

	reply := &models.Post{
		AuthorID: "user-2",
		Username: "bob",
		BoardID:  root.BoardID,
		ParentID: &root.ID,
		Path:     threads.ReplyPath(root),
		Content:  "a reply",
	}
	require.NoError(t, store.CreatePost(ctx, reply))
	assert.Equal(t, ","+root.ID+",", reply.Path)

	parent, err := store.GetPost(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, parent.CommentCount)

	// A reply to a missing parent is refused and nothing is counted.
	missing := "nope"
	err = store.CreatePost(ctx, &models.Post{AuthorID: "user-2", ParentID: &missing})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCastVoteStateMachine(t *testing.T) {
	store, _, post := newTestStore(t)
	ctx := context.Background()

	counts := func() (int, int) {
		p, err := store.GetPost(ctx, post.ID)
		require.NoError(t, err)
		return p.UpvoteCount, p.DownvoteCount
	}

	// none -> upvoted
	state, err := store.CastVote(ctx, "user-9", post.ID, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, models.VoteStateUp, state)
	up, down := counts()
	assert.Equal(t, []int{1, 0}, []int{up, down})

	// upvoted -> downvoted: old vote retracted before the new one lands
	state, err = store.CastVote(ctx, "user-9", post.ID, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, models.VoteStateDown, state)
	up, down = counts()
	assert.Equal(t, []int{0, 1}, []int{up, down})

	// downvoted -> none (toggle off)
	state, err = store.CastVote(ctx, "user-9", post.ID, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, models.VoteStateNone, state)
	up, down = counts()
	assert.Equal(t, []int{0, 0}, []int{up, down})

	_, err = store.GetVote(ctx, "user-9", post.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCastVoteToggleIsIdempotent(t *testing.T) {
	store, _, post := newTestStore(t)
	ctx := context.Background()

	_, err := store.CastVote(ctx, "user-9", post.ID, models.VoteUp)
	require.NoError(t, err)
	_, err = store.CastVote(ctx, "user-9", post.ID, models.VoteUp)
	require.NoError(t, err)

	// Back to the initial state: no ledger row, no net counter change.
	p, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, p.UpvoteCount)
	_, err = store.GetVote(ctx, "user-9", post.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCastVoteMissingPost(t *testing.T) {
	store, _, _ := newTestStore(t)

	_, err := store.CastVote(context.Background(), "user-9", "missing", models.VoteUp)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// Counters must equal the ledger regardless of interleaving: hammer one
// post from several goroutines, then reconcile.
func TestCastVoteConcurrentTogglesStayConsistent(t *testing.T) {
	store, _, post := newTestStore(t)
	ctx := context.Background()

	const users = 8
	const togglesPerUser = 25

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for i := 0; i < togglesPerUser; i++ {
				kind := models.VoteUp
				if i%3 == 0 {
					kind = models.VoteDown
				}
				_, err := store.CastVote(ctx, userID, post.ID, kind)
				assert.NoError(t, err)
			}
		}(string(rune('a' + u)))
	}
	wg.Wait()

	p, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)

	var upRows, downRows int
	for u := 0; u < users; u++ {
		vote, err := store.GetVote(ctx, string(rune('a'+u)), post.ID)
		if err != nil {
			assert.ErrorIs(t, err, storage.ErrNotFound)
			continue
		}
		if vote.Kind == models.VoteUp {
			upRows++
		} else {
			downRows++
		}
	}
	assert.Equal(t, upRows, p.UpvoteCount)
	assert.Equal(t, downRows, p.DownvoteCount)
}

func TestListVotedPosts(t *testing.T) {
	store, board, first := newTestStore(t)
	ctx := context.Background()

	second := &models.Post{
		AuthorID:  "user-1",
		BoardID:   board.ID,
		Path:      models.RootPath,
		Content:   "second",
		CreatedAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, store.CreatePost(ctx, second))

	_, err := store.CastVote(ctx, "user-9", first.ID, models.VoteUp)
	require.NoError(t, err)
	_, err = store.CastVote(ctx, "user-9", second.ID, models.VoteUp)
	require.NoError(t, err)
	_, err = store.CastVote(ctx, "other", first.ID, models.VoteDown)
	require.NoError(t, err)

	// Only the asking user's votes of the asked kind, newest first.
	upvoted, err := store.ListVotedPosts(ctx, "user-9", models.VoteUp, storage.PageArgs{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, upvoted, 2)
	assert.Equal(t, second.ID, upvoted[0].ID)
	assert.Equal(t, first.ID, upvoted[1].ID)

	downvoted, err := store.ListVotedPosts(ctx, "user-9", models.VoteDown, storage.PageArgs{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, downvoted)

	// Switching a vote moves the post between the listings.
	_, err = store.CastVote(ctx, "user-9", first.ID, models.VoteDown)
	require.NoError(t, err)

	upvoted, err = store.ListVotedPosts(ctx, "user-9", models.VoteUp, storage.PageArgs{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, upvoted, 1)
	assert.Equal(t, second.ID, upvoted[0].ID)

	downvoted, err = store.ListVotedPosts(ctx, "user-9", models.VoteDown, storage.PageArgs{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, downvoted, 1)
	assert.Equal(t, first.ID, downvoted[0].ID)
}

func TestDeletePostCascadesLedgerNotReplies(t *testing.T) {
	store, _, root := newTestStore(t)
	ctx := context.Background()

	reply := &models.Post{
		AuthorID: "user-2",
		BoardID:  root.BoardID,
		ParentID: &root.ID,
		Path:     threads.ReplyPath(root),
		Content:  "orphan to be",
	}
	require.NoError(t, store.CreatePost(ctx, reply))

	_, err := store.CastVote(ctx, "user-2", root.ID, models.VoteUp)
	require.NoError(t, err)
	_, err = store.ToggleBookmark(ctx, "user-2", root.ID)
	require.NoError(t, err)

	require.NoError(t, store.DeletePost(ctx, root.ID))

	_, err = store.GetPost(ctx, root.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetVote(ctx, "user-2", root.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	bookmarked, err := store.IsBookmarked(ctx, "user-2", root.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	// The reply survives, still naming the deleted parent.
	orphan, err := store.GetPost(ctx, reply.ID)
	require.NoError(t, err)
	require.NotNil(t, orphan.ParentID)
	assert.Equal(t, root.ID, *orphan.ParentID)
	assert.Contains(t, orphan.Path, root.ID)

	assert.ErrorIs(t, store.DeletePost(ctx, root.ID), storage.ErrNotFound)
}

func TestToggleBookmarkRoundTrip(t *testing.T) {
	store, _, post := newTestStore(t)
	ctx := context.Background()

	bookmarked, err := store.ToggleBookmark(ctx, "user-3", post.ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = store.ToggleBookmark(ctx, "user-3", post.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	is, err := store.IsBookmarked(ctx, "user-3", post.ID)
	require.NoError(t, err)
	assert.False(t, is)

	_, err = store.ToggleBookmark(ctx, "user-3", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListPostsByBoardsAndPagination(t *testing.T) {
	store, board, first := newTestStore(t)
	ctx := context.Background()

	other := &models.Board{Title: "meta", Description: "about us", CreatorID: "user-1"}
	require.NoError(t, store.CreateBoard(ctx, other))

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.CreatePost(ctx, &models.Post{
			AuthorID:  "user-1",
			BoardID:   board.ID,
			Path:      models.RootPath,
			Content:   "post",
			CreatedAt: base.Add(time.Duration(i+1) * time.Minute),
		}))
	}
	require.NoError(t, store.CreatePost(ctx, &models.Post{
		AuthorID:  "user-1",
		BoardID:   other.ID,
		Path:      models.RootPath,
		Content:   "elsewhere",
		CreatedAt: base.Add(time.Hour),
	}))

	posts, err := store.ListPostsByBoards(ctx, []string{board.ID}, storage.PageArgs{Page: 1, Limit: 3})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for _, p := range posts {
		assert.Equal(t, board.ID, p.BoardID)
	}
	// Newest first.
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))

	page2, err := store.ListPostsByBoards(ctx, []string{board.ID}, storage.PageArgs{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page2, 3) // five new + the seeded first post

	empty, err := store.ListPostsByBoards(ctx, nil, storage.PageArgs{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, empty)

	since, err := store.ListPostsSince(ctx, base.Add(4*time.Minute))
	require.NoError(t, err)
	assert.Len(t, since, 3) // minutes 4, 5 and the other-board post
	for _, p := range since {
		assert.NotEqual(t, first.ID, p.ID)
	}
}

func TestFollowBoard(t *testing.T) {
	store, board, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.FollowBoard(ctx, "user-7", board.ID))
	assert.ErrorIs(t, store.FollowBoard(ctx, "user-7", board.ID), storage.ErrConflict)
	assert.ErrorIs(t, store.FollowBoard(ctx, "user-7", "missing"), storage.ErrNotFound)

	ids, err := store.FollowedBoardIDs(ctx, "user-7")
	require.NoError(t, err)
	assert.Equal(t, []string{board.ID}, ids)

	boards, err := store.ListFollowedBoards(ctx, "user-7")
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, board.Title, boards[0].Title)

	require.NoError(t, store.UnfollowBoard(ctx, "user-7", board.ID))
	assert.ErrorIs(t, store.UnfollowBoard(ctx, "user-7", board.ID), storage.ErrNotFound)
}

func TestAddViews(t *testing.T) {
	store, _, post := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddViews(ctx, post.ID, 3))
	require.NoError(t, store.AddViews(ctx, post.ID, 2))

	p, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.ViewCount)
}
