package services

import (
	"context"
	"fmt"

	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/storage"
)

// BoardService owns board CRUD and follow relationships. The feed
// assembler never talks to it; it receives followed-board ids as input.
type BoardService struct {
	store storage.Store
}

func NewBoardService(store storage.Store) *BoardService {
	return &BoardService{store: store}
}

func (s *BoardService) Create(ctx context.Context, p Principal, title, description string) (*models.Board, error) {
	board := &models.Board{
		Title:       title,
		Description: description,
		CreatorID:   p.UserID,
	}
	if err := s.store.CreateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}
	return board, nil
}

func (s *BoardService) Get(ctx context.Context, id string) (*models.Board, error) {
	return s.store.GetBoard(ctx, id)
}

func (s *BoardService) List(ctx context.Context) ([]models.Board, error) {
	return s.store.ListBoards(ctx)
}

// Update changes title and/or description. Creator only; empty fields keep
// their current value.
func (s *BoardService) Update(ctx context.Context, p Principal, id, title, description string) (*models.Board, error) {
	board, err := s.store.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if board.CreatorID != p.UserID {
		return nil, ErrForbidden
	}
	if title != "" {
		board.Title = title
	}
	if description != "" {
		board.Description = description
	}
	if err := s.store.UpdateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("updating board: %w", err)
	}
	return board, nil
}

func (s *BoardService) Delete(ctx context.Context, p Principal, id string) error {
	board, err := s.store.GetBoard(ctx, id)
	if err != nil {
		return err
	}
	if board.CreatorID != p.UserID {
		return ErrForbidden
	}
	return s.store.DeleteBoard(ctx, id)
}

func (s *BoardService) Follow(ctx context.Context, userID, boardID string) error {
	return s.store.FollowBoard(ctx, userID, boardID)
}

func (s *BoardService) Unfollow(ctx context.Context, userID, boardID string) error {
	return s.store.UnfollowBoard(ctx, userID, boardID)
}

func (s *BoardService) Followed(ctx context.Context, userID string) ([]models.Board, error) {
	return s.store.ListFollowedBoards(ctx, userID)
}

// FollowedIDs feeds the feed assembler its followed-board input.
func (s *BoardService) FollowedIDs(ctx context.Context, userID string) ([]string, error) {
	return s.store.FollowedBoardIDs(ctx, userID)
}
