package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/OmPreetham/we-backend/internal/cache"
	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/ranking"
	"github.com/OmPreetham/we-backend/internal/storage"
)

const (
	// TrendingWindow bounds the trending candidate set.
	TrendingWindow = 7 * 24 * time.Hour
	// forYouCandidateLimit bounds the for-you candidate set before ranking.
	forYouCandidateLimit = 500
)

// FeedService assembles the trending, following, for-you and bookmarked
// feeds, cache-aside per the TTL table. A cache failure is logged and the
// read falls through to the store.
type FeedService struct {
	store storage.Store
	cache cache.Store
	ttl   cache.TTLConfig
	rank  ranking.Config
	now   func() time.Time
}

func NewFeedService(store storage.Store, cacheStore cache.Store, ttl cache.TTLConfig) *FeedService {
	return &FeedService{
		store: store,
		cache: cacheStore,
		ttl:   ttl,
		rank:  ranking.DefaultConfig,
		now:   time.Now,
	}
}

func (s *FeedService) cacheGet(ctx context.Context, key string) ([]models.Post, bool) {
	raw, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("cache read failed for %s: %v", key, err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var posts []models.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		log.Printf("dropping undecodable cache entry %s: %v", key, err)
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Printf("cache delete failed for %s: %v", key, err)
		}
		return nil, false
	}
	return posts, true
}

func (s *FeedService) cacheSet(ctx context.Context, key string, posts []models.Post, ttl time.Duration) {
	raw, err := json.Marshal(posts)
	if err != nil {
		log.Printf("failed to serialize feed for %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), ttl); err != nil {
		log.Printf("cache write failed for %s: %v", key, err)
	}
}

// Trending ranks the posts of the last seven days. The result is cached
// per limit and only ever expires by TTL; votes and replies landing inside
// the window are served stale until then.
func (s *FeedService) Trending(ctx context.Context, limit int) ([]models.Post, error) {
	key := cache.TrendingKey(limit)
	if s.ttl.Trending > 0 {
		if posts, ok := s.cacheGet(ctx, key); ok {
			return posts, nil
		}
	}

	candidates, err := s.store.ListPostsSince(ctx, s.now().Add(-TrendingWindow))
	if err != nil {
		return nil, fmt.Errorf("loading trending candidates: %w", err)
	}
	posts := s.rank.Rank(candidates, limit, s.now())

	if s.ttl.Trending > 0 {
		s.cacheSet(ctx, key, posts, s.ttl.Trending)
	}
	return posts, nil
}

// Following returns posts from the followed boards, newest first. An empty
// board set is an empty feed, not an error.
func (s *FeedService) Following(ctx context.Context, userID string, boardIDs []string, page storage.PageArgs) ([]models.Post, error) {
	if len(boardIDs) == 0 {
		return []models.Post{}, nil
	}
	posts, err := s.store.ListPostsByBoards(ctx, boardIDs, page)
	if err != nil {
		return nil, fmt.Errorf("loading following feed: %w", err)
	}
	return posts, nil
}

// ForYou draws from the same followed-board candidates as Following but
// orders them by trending score instead of recency.
func (s *FeedService) ForYou(ctx context.Context, userID string, boardIDs []string, limit int) ([]models.Post, error) {
	if len(boardIDs) == 0 {
		return []models.Post{}, nil
	}
	candidates, err := s.store.ListPostsByBoards(ctx, boardIDs, storage.PageArgs{Page: 1, Limit: forYouCandidateLimit})
	if err != nil {
		return nil, fmt.Errorf("loading for-you candidates: %w", err)
	}
	return s.rank.Rank(candidates, limit, s.now()), nil
}

// Bookmarked returns the user's bookmarked posts, newest first. The cache
// holds the full unpaginated list under one key per user, the key bookmark
// toggles invalidate; page and limit are sliced out of it afterwards, so a
// small-limit read never poisons the key for later readers.
func (s *FeedService) Bookmarked(ctx context.Context, userID string, page storage.PageArgs) ([]models.Post, error) {
	key := cache.BookmarksKey(userID)

	if s.ttl.Bookmarks > 0 {
		if all, ok := s.cacheGet(ctx, key); ok {
			return pageSlice(all, page), nil
		}
	}

	all, err := s.store.ListBookmarkedPosts(ctx, userID, storage.PageArgs{})
	if err != nil {
		return nil, fmt.Errorf("loading bookmarked posts: %w", err)
	}

	if s.ttl.Bookmarks > 0 {
		s.cacheSet(ctx, key, all, s.ttl.Bookmarks)
	}
	return pageSlice(all, page), nil
}

// pageSlice applies page/limit to an already-ordered list. A non-positive
// limit means no pagination.
func pageSlice(posts []models.Post, page storage.PageArgs) []models.Post {
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
