package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements storage.Store on PostgreSQL through GORM.
type Store struct {
	db *gorm.DB
}

// New connects and migrates the schema.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Board{},
		&models.Post{},
		&models.Vote{},
		&models.Bookmark{},
		&models.Follow{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection (used by tests against a throwaway
// database).
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrConflict
	default:
		return err
	}
}

func applyPage(q *gorm.DB, page storage.PageArgs) *gorm.DB {
	if page.Limit <= 0 {
		return q
	}
	return q.Limit(page.Limit).Offset(page.Offset())
}

// === Posts ===

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if post.ParentID != nil {
			// Re-check the parent inside the transaction so the comment
			// count increment cannot land on a post deleted in between.
			var parent models.Post
			if err := tx.First(&parent, "id = ?", *post.ParentID).Error; err != nil {
				return translate(err)
			}
			res := tx.Model(&models.Post{}).Where("id = ?", *post.ParentID).
				UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
			if res.Error != nil {
				return res.Error
			}
		}
		return translate(tx.Create(post).Error)
	})
}

func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *Store) ListPosts(ctx context.Context, boardID string, page storage.PageArgs) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Model(&models.Post{})
	if boardID != "" {
		q = q.Where("board_id = ?", boardID)
	}
	var posts []models.Post
	err := applyPage(q.Order("created_at DESC"), page).Find(&posts).Error
	return posts, err
}

func (s *Store) ListPostsByBoards(ctx context.Context, boardIDs []string, page storage.PageArgs) ([]models.Post, error) {
	if len(boardIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	q := s.db.WithContext(ctx).
		Where("board_id IN ?", boardIDs).
		Order("created_at DESC")
	err := applyPage(q, page).Find(&posts).Error
	return posts, err
}

func (s *Store) ListPostsSince(ctx context.Context, cutoff time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("created_at >= ?", cutoff).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string, repliesOnly bool, page storage.PageArgs) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Where("author_id = ?", authorID)
	if repliesOnly {
		q = q.Where("parent_id IS NOT NULL")
	} else {
		q = q.Where("parent_id IS NULL")
	}
	var posts []models.Post
	err := applyPage(q.Order("created_at DESC"), page).Find(&posts).Error
	return posts, err
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		if err := tx.Delete(&models.Vote{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bookmark{}, "post_id = ?", id).Error
	})
}

func (s *Store) AddViews(ctx context.Context, id string, delta int) error {
	return s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}

// === Vote ledger ===

func counterColumn(kind models.VoteKind) string {
	if kind == models.VoteDown {
		return "downvote_count"
	}
	return "upvote_count"
}

func bumpCounter(tx *gorm.DB, postID string, kind models.VoteKind, delta int) error {
	col := counterColumn(kind)
	return tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta)).Error
}

// CastVote serializes concurrent casts for the same post behind a row lock,
// so the read-branch-write below cannot lose updates. The ledger row and
// the counter deltas commit or roll back together.
func (s *Store) CastVote(ctx context.Context, userID, postID string, kind models.VoteKind) (models.VoteState, error) {
	state := models.VoteStateNone
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, "id = ?", postID).Error
		if err != nil {
			return translate(err)
		}

		var existing models.Vote
		err = tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error
		switch {
		case err == nil && existing.Kind == kind:
			// Same kind again: toggle off.
			if err := tx.Delete(&models.Vote{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			state = models.VoteStateNone
			return bumpCounter(tx, postID, kind, -1)

		case err == nil:
			// Opposite kind: retract the old vote, then apply the new one.
			if err := tx.Delete(&models.Vote{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			if err := bumpCounter(tx, postID, existing.Kind, -1); err != nil {
				return err
			}
			if err := tx.Create(&models.Vote{UserID: userID, PostID: postID, Kind: kind}).Error; err != nil {
				return translate(err)
			}
			state = models.VoteState(kind)
			return bumpCounter(tx, postID, kind, 1)

		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Vote{UserID: userID, PostID: postID, Kind: kind}).Error; err != nil {
				return translate(err)
			}
			state = models.VoteState(kind)
			return bumpCounter(tx, postID, kind, 1)

		default:
			return err
		}
	})
	if err != nil {
		return models.VoteStateNone, err
	}
	return state, nil
}

func (s *Store) GetVote(ctx context.Context, userID, postID string) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		return nil, translate(err)
	}
	return &vote, nil
}

func (s *Store) ListVotedPosts(ctx context.Context, userID string, kind models.VoteKind, page storage.PageArgs) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN votes ON votes.post_id = posts.id").
		Where("votes.user_id = ? AND votes.kind = ?", userID, kind).
		Order("posts.created_at DESC")
	err := applyPage(q, page).Find(&posts).Error
	return posts, err
}

// === Bookmarks ===

func (s *Store) ToggleBookmark(ctx context.Context, userID, postID string) (bool, error) {
	bookmarked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(&models.Bookmark{}, "user_id = ? AND post_id = ?", userID, postID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		bookmarked = true
		return translate(tx.Create(&models.Bookmark{UserID: userID, PostID: postID}).Error)
	})
	return bookmarked, err
}

func (s *Store) IsBookmarked(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) ListBookmarkedPosts(ctx context.Context, userID string, page storage.PageArgs) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("posts.created_at DESC")
	err := applyPage(q, page).Find(&posts).Error
	return posts, err
}

// === Boards & follows ===

func (s *Store) CreateBoard(ctx context.Context, board *models.Board) error {
	return translate(s.db.WithContext(ctx).Create(board).Error)
}

func (s *Store) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	var board models.Board
	if err := s.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &board, nil
}

func (s *Store) ListBoards(ctx context.Context) ([]models.Board, error) {
	var boards []models.Board
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&boards).Error
	return boards, err
}

func (s *Store) UpdateBoard(ctx context.Context, board *models.Board) error {
	res := s.db.WithContext(ctx).Model(&models.Board{}).
		Where("id = ?", board.ID).
		Updates(map[string]interface{}{
			"title":       board.Title,
			"description": board.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Board{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return tx.Delete(&models.Follow{}, "board_id = ?", id).Error
	})
}

func (s *Store) FollowBoard(ctx context.Context, userID, boardID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := tx.First(&board, "id = ?", boardID).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Create(&models.Follow{UserID: userID, BoardID: boardID}).Error)
	})
}

func (s *Store) UnfollowBoard(ctx context.Context, userID, boardID string) error {
	res := s.db.WithContext(ctx).
		Delete(&models.Follow{}, "user_id = ? AND board_id = ?", userID, boardID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) FollowedBoardIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("board_id", &ids).Error
	return ids, err
}

func (s *Store) ListFollowedBoards(ctx context.Context, userID string) ([]models.Board, error) {
	var boards []models.Board
	err := s.db.WithContext(ctx).Model(&models.Board{}).
		Joins("JOIN follows ON follows.board_id = boards.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&boards).Error
	return boards, err
}
