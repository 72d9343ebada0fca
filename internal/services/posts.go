package services

import (
	"context"
	"fmt"
	"log"

	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/storage"
	"github.com/OmPreetham/we-backend/internal/threads"
)

// PostService owns post creation, threading and deletion.
type PostService struct {
	store storage.Store
}

func NewPostService(store storage.Store) *PostService {
	return &PostService{store: store}
}

// CreateInput carries a new root post or reply. Username lets the caller
// post under a display name other than the account name.
type CreateInput struct {
	BoardID  string
	Content  string
	ParentID *string
	Username string
}

// Create places the post in the thread tree and persists it. Replies take
// their path and board from the parent; a board id supplied by the caller
// is ignored for replies. The parent's comment count is incremented by the
// store in the same atomic unit as the insert.
func (s *PostService) Create(ctx context.Context, p Principal, in CreateInput) (*models.Post, error) {
	post := &models.Post{
		AuthorID: p.UserID,
		Username: p.Username,
		Content:  in.Content,
	}
	if in.Username != "" {
		post.Username = in.Username
	}

	if in.ParentID != nil {
		parent, err := s.store.GetPost(ctx, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("looking up parent post: %w", err)
		}
		post.ParentID = &parent.ID
		post.Path = threads.ReplyPath(parent)
		post.BoardID = parent.BoardID
	} else {
		if _, err := s.store.GetBoard(ctx, in.BoardID); err != nil {
			return nil, fmt.Errorf("looking up board: %w", err)
		}
		post.Path = threads.RootPath()
		post.BoardID = in.BoardID
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	log.Printf("post %s created by user %s (board %s, depth %d)",
		post.ID, p.UserID, post.BoardID, threads.Depth(post.Path))
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.store.GetPost(ctx, id)
}

func (s *PostService) List(ctx context.Context, boardID string, page storage.PageArgs) ([]models.Post, error) {
	return s.store.ListPosts(ctx, boardID, page)
}

// ListByBoard is List with the board's existence checked first.
func (s *PostService) ListByBoard(ctx context.Context, boardID string, page storage.PageArgs) ([]models.Post, error) {
	if _, err := s.store.GetBoard(ctx, boardID); err != nil {
		return nil, fmt.Errorf("looking up board: %w", err)
	}
	return s.store.ListPosts(ctx, boardID, page)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string, repliesOnly bool, page storage.PageArgs) ([]models.Post, error) {
	return s.store.ListPostsByAuthor(ctx, authorID, repliesOnly, page)
}

// Delete hard-deletes a post after the capability check, cascading its
// vote and bookmark rows. Replies are deliberately left in place: their
// parent id and path keep naming the deleted post, and readers treat the
// missing ancestor as a tombstone.
func (s *PostService) Delete(ctx context.Context, id string, p Principal) error {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !CanDelete(post, p) {
		return ErrForbidden
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	log.Printf("post %s deleted by user %s (role %s)", id, p.UserID, p.Role)
	return nil
}
