package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/storage"

	"github.com/google/uuid"
)

type voteKey struct {
	userID string
	postID string
}

type followKey struct {
	userID  string
	boardID string
}

// Store is a mutex-guarded map implementation of storage.Store. It backs
// the test suite and works as a dev backend; a single lock per call gives
// every operation the atomicity the contract demands.
type Store struct {
	mu        sync.Mutex
	posts     map[string]models.Post
	votes     map[voteKey]models.Vote
	bookmarks map[voteKey]models.Bookmark
	boards    map[string]models.Board
	follows   map[followKey]models.Follow
}

func New() *Store {
	return &Store{
		posts:     make(map[string]models.Post),
		votes:     make(map[voteKey]models.Vote),
		bookmarks: make(map[voteKey]models.Bookmark),
		boards:    make(map[string]models.Board),
		follows:   make(map[followKey]models.Follow),
	}
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func paginate(posts []models.Post, page storage.PageArgs) []models.Post {
	if page.Limit <= 0 {
		return posts
	}
	off := page.Offset()
	if off >= len(posts) {
		return []models.Post{}
	}
	end := off + page.Limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[off:end]
}

// === Posts ===

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ParentID != nil {
		parent, ok := s.posts[*post.ParentID]
		if !ok {
			return storage.ErrNotFound
		}
		parent.CommentCount++
		s.posts[parent.ID] = parent
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Path == "" {
		post.Path = models.RootPath
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID] = *post
	return nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &post, nil
}

func (s *Store) ListPosts(ctx context.Context, boardID string, page storage.PageArgs) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if boardID == "" || p.BoardID == boardID {
			posts = append(posts, p)
		}
	}
	sortNewestFirst(posts)
	return paginate(posts, page), nil
}

func (s *Store) ListPostsByBoards(ctx context.Context, boardIDs []string, page storage.PageArgs) ([]models.Post, error) {
	if len(boardIDs) == 0 {
		return []models.Post{}, nil
	}
	wanted := make(map[string]bool, len(boardIDs))
	for _, id := range boardIDs {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for _, p := range s.posts {
		if wanted[p.BoardID] {
			posts = append(posts, p)
		}
	}
	sortNewestFirst(posts)
	return paginate(posts, page), nil
}

func (s *Store) ListPostsSince(ctx context.Context, cutoff time.Time) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for _, p := range s.posts {
		if !p.CreatedAt.Before(cutoff) {
			posts = append(posts, p)
		}
	}
	sortNewestFirst(posts)
	return posts, nil
}

func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string, repliesOnly bool, page storage.PageArgs) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for _, p := range s.posts {
		if p.AuthorID != authorID {
			continue
		}
		if repliesOnly != (p.ParentID != nil) {
			continue
		}
		posts = append(posts, p)
	}
	sortNewestFirst(posts)
	return paginate(posts, page), nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	for k := range s.votes {
		if k.postID == id {
			delete(s.votes, k)
		}
	}
	for k := range s.bookmarks {
		if k.postID == id {
			delete(s.bookmarks, k)
		}
	}
	return nil
}

func (s *Store) AddViews(ctx context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil
	}
	post.ViewCount += delta
	s.posts[id] = post
	return nil
}

// === Vote ledger ===

func (s *Store) CastVote(ctx context.Context, userID, postID string, kind models.VoteKind) (models.VoteState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return models.VoteStateNone, storage.ErrNotFound
	}

	bump := func(k models.VoteKind, delta int) {
		if k == models.VoteDown {
			post.DownvoteCount += delta
		} else {
			post.UpvoteCount += delta
		}
	}

	key := voteKey{userID: userID, postID: postID}
	existing, voted := s.votes[key]

	switch {
	case voted && existing.Kind == kind:
		delete(s.votes, key)
		bump(kind, -1)
		s.posts[postID] = post
		return models.VoteStateNone, nil

	case voted:
		bump(existing.Kind, -1)
		fallthrough

	default:
		s.votes[key] = models.Vote{
			ID:        uuid.NewString(),
			UserID:    userID,
			PostID:    postID,
			Kind:      kind,
			CreatedAt: time.Now(),
		}
		bump(kind, 1)
		s.posts[postID] = post
		return models.VoteState(kind), nil
	}
}

func (s *Store) GetVote(ctx context.Context, userID, postID string) (*models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote, ok := s.votes[voteKey{userID: userID, postID: postID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &vote, nil
}

func (s *Store) ListVotedPosts(ctx context.Context, userID string, kind models.VoteKind, page storage.PageArgs) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for k, v := range s.votes {
		if k.userID != userID || v.Kind != kind {
			continue
		}
		if post, ok := s.posts[k.postID]; ok {
			posts = append(posts, post)
		}
	}
	sortNewestFirst(posts)
	return paginate(posts, page), nil
}

// === Bookmarks ===

func (s *Store) ToggleBookmark(ctx context.Context, userID, postID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return false, storage.ErrNotFound
	}
	key := voteKey{userID: userID, postID: postID}
	if _, ok := s.bookmarks[key]; ok {
		delete(s.bookmarks, key)
		return false, nil
	}
	s.bookmarks[key] = models.Bookmark{
		ID:        uuid.NewString(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	return true, nil
}

func (s *Store) IsBookmarked(ctx context.Context, userID, postID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.bookmarks[voteKey{userID: userID, postID: postID}]
	return ok, nil
}

func (s *Store) ListBookmarkedPosts(ctx context.Context, userID string, page storage.PageArgs) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for k := range s.bookmarks {
		if k.userID != userID {
			continue
		}
		if post, ok := s.posts[k.postID]; ok {
			posts = append(posts, post)
		}
	}
	sortNewestFirst(posts)
	return paginate(posts, page), nil
}

// === Boards & follows ===

func (s *Store) CreateBoard(ctx context.Context, board *models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if board.ID == "" {
		board.ID = uuid.NewString()
	}
	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now()
	}
	board.UpdatedAt = board.CreatedAt
	s.boards[board.ID] = *board
	return nil
}

func (s *Store) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &board, nil
}

func (s *Store) ListBoards(ctx context.Context) ([]models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards := make([]models.Board, 0, len(s.boards))
	for _, b := range s.boards {
		boards = append(boards, b)
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].CreatedAt.Before(boards[j].CreatedAt)
	})
	return boards, nil
}

func (s *Store) UpdateBoard(ctx context.Context, board *models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.boards[board.ID]
	if !ok {
		return storage.ErrNotFound
	}
	current.Title = board.Title
	current.Description = board.Description
	current.UpdatedAt = time.Now()
	s.boards[board.ID] = current
	return nil
}

func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.boards, id)
	for k := range s.follows {
		if k.boardID == id {
			delete(s.follows, k)
		}
	}
	return nil
}

func (s *Store) FollowBoard(ctx context.Context, userID, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards[boardID]; !ok {
		return storage.ErrNotFound
	}
	key := followKey{userID: userID, boardID: boardID}
	if _, ok := s.follows[key]; ok {
		return storage.ErrConflict
	}
	s.follows[key] = models.Follow{
		ID:        uuid.NewString(),
		UserID:    userID,
		BoardID:   boardID,
		CreatedAt: time.Now(),
	}
	return nil
}

func (s *Store) UnfollowBoard(ctx context.Context, userID, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID: userID, boardID: boardID}
	if _, ok := s.follows[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.follows, key)
	return nil
}

func (s *Store) FollowedBoardIDs(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for k := range s.follows {
		if k.userID == userID {
			ids = append(ids, k.boardID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) ListFollowedBoards(ctx context.Context, userID string) ([]models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var follows []models.Follow
	for _, f := range s.follows {
		if f.UserID == userID {
			follows = append(follows, f)
		}
	}
	sort.Slice(follows, func(i, j int) bool {
		return follows[i].CreatedAt.After(follows[j].CreatedAt)
	})
	boards := make([]models.Board, 0, len(follows))
	for _, f := range follows {
		if b, ok := s.boards[f.BoardID]; ok {
			boards = append(boards, b)
		}
	}
	return boards, nil
}
