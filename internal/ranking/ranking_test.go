package ranking

import (
	"testing"
	"time"

	"github.com/OmPreetham/we-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestScoreKnownValue(t *testing.T) {
	// 10 up, 2 down, 3 comments, one hour old:
	// (10-2 + 3*2) / (1+2) = 14/3
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	post := &models.Post{
		ID:            "A",
		UpvoteCount:   10,
		DownvoteCount: 2,
		CommentCount:  3,
		CreatedAt:     created,
	}

	got := Score(post, created.Add(time.Hour))
	assert.InDelta(t, 14.0/3.0, got, 1e-9)
}

func TestScoreMonotonicity(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	base := models.Post{UpvoteCount: 5, DownvoteCount: 1, CommentCount: 2, CreatedAt: created}

	// Decreasing in age, votes and comments fixed.
	younger := Score(&base, created.Add(time.Hour))
	older := Score(&base, created.Add(10*time.Hour))
	assert.Greater(t, younger, older)

	// Increasing in net votes, age fixed.
	moreVotes := base
	moreVotes.UpvoteCount++
	now := created.Add(3 * time.Hour)
	assert.Greater(t, Score(&moreVotes, now), Score(&base, now))

	fewerVotes := base
	fewerVotes.DownvoteCount++
	assert.Less(t, Score(&fewerVotes, now), Score(&base, now))
}

func TestScoreBrandNewPostIsFinite(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	post := &models.Post{UpvoteCount: 4, CreatedAt: created}

	// Zero age: the +2 floor keeps the denominator away from zero.
	assert.InDelta(t, 2.0, Score(post, created), 1e-9)
}

func TestRankOrdersByScoreThenRecency(t *testing.T) {
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	hot := models.Post{ID: "hot", UpvoteCount: 50, CreatedAt: now.Add(-time.Hour)}
	warm := models.Post{ID: "warm", UpvoteCount: 10, CreatedAt: now.Add(-time.Hour)}
	cold := models.Post{ID: "cold", UpvoteCount: 1, CreatedAt: now.Add(-48 * time.Hour)}

	// Identical scores, different ages: 6/(1+2) == 12/(4+2), and the
	// newer post wins the tie.
	tieNew := models.Post{ID: "tie-new", UpvoteCount: 6, CreatedAt: now.Add(-time.Hour)}
	tieOld := models.Post{ID: "tie-old", UpvoteCount: 12, CreatedAt: now.Add(-4 * time.Hour)}

	ranked := Rank([]models.Post{cold, tieOld, warm, hot, tieNew}, 0, now)

	ids := make([]string, len(ranked))
	for i, p := range ranked {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"hot", "warm", "tie-new", "tie-old", "cold"}, ids[:5])
}

func TestRankRespectsLimit(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		{ID: "a", UpvoteCount: 3, CreatedAt: now.Add(-time.Hour)},
		{ID: "b", UpvoteCount: 2, CreatedAt: now.Add(-time.Hour)},
		{ID: "c", UpvoteCount: 1, CreatedAt: now.Add(-time.Hour)},
	}

	ranked := Rank(posts, 2, now)
	assert.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)

	// Input order untouched.
	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, "c", posts[2].ID)
}
