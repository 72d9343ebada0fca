// Package ranking scores posts by recent engagement and orders bounded
// candidate sets. Everything here is pure and in-memory; callers are
// responsible for keeping candidate sets bounded (a board set, the last
// seven days), never the full table.
package ranking

import (
	"sort"
	"time"

	"github.com/OmPreetham/we-backend/internal/models"
)

type Config struct {
	// CommentWeight multiplies the comment count relative to net votes.
	CommentWeight float64
	// AgeFloorHours is added to the age denominator. It prevents division
	// blow-up on brand-new posts and dampens the first hours of age.
	AgeFloorHours float64
}

var DefaultConfig = Config{
	CommentWeight: 2.0,
	AgeFloorHours: 2.0,
}

// Score computes the trending score of a post at the given instant:
//
//	(netVotes + commentCount*CommentWeight) / (ageHours + AgeFloorHours)
//
// Strictly increasing in net votes, strictly decreasing in age.
func (c Config) Score(post *models.Post, now time.Time) float64 {
	net := float64(post.UpvoteCount - post.DownvoteCount)
	ageHours := now.Sub(post.CreatedAt).Hours()
	return (net + float64(post.CommentCount)*c.CommentWeight) / (ageHours + c.AgeFloorHours)
}

// Score scores with DefaultConfig.
func Score(post *models.Post, now time.Time) float64 {
	return DefaultConfig.Score(post, now)
}

// Rank orders posts by score descending, breaking ties by creation time
// descending (newest first), and returns at most limit posts. The input
// slice is not modified.
func (c Config) Rank(posts []models.Post, limit int, now time.Time) []models.Post {
	ranked := make([]models.Post, len(posts))
	copy(ranked, posts)

	scores := make(map[string]float64, len(ranked))
	for i := range ranked {
		scores[ranked[i].ID] = c.Score(&ranked[i], now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Rank orders with DefaultConfig.
func Rank(posts []models.Post, limit int, now time.Time) []models.Post {
	return DefaultConfig.Rank(posts, limit, now)
}
