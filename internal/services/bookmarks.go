package services

import (
	"context"
	"log"

	"github.com/OmPreetham/we-backend/internal/cache"
	"github.com/OmPreetham/we-backend/internal/storage"
)

// BookmarkService toggles bookmarks and keeps the cached bookmark feed
// honest by deleting the user's cache key on every write.
type BookmarkService struct {
	store storage.Store
	cache cache.Store
}

func NewBookmarkService(store storage.Store, cacheStore cache.Store) *BookmarkService {
	return &BookmarkService{store: store, cache: cacheStore}
}

// Toggle flips the bookmark and reports whether the post is now
// bookmarked. The cache key is deleted unconditionally, not refreshed;
// the next read repopulates it.
func (s *BookmarkService) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	bookmarked, err := s.store.ToggleBookmark(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if err := s.cache.Delete(ctx, cache.BookmarksKey(userID)); err != nil {
		// Caching is an optimization; a failed invalidation means a stale
		// read until the TTL, not a failed toggle.
		log.Printf("failed to invalidate bookmark cache for user %s: %v", userID, err)
	}
	return bookmarked, nil
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return false, err
	}
	return s.store.IsBookmarked(ctx, userID, postID)
}
