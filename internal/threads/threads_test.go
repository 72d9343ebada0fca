package threads

import (
	"testing"

	"github.com/OmPreetham/we-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReplyPathChainsAncestors(t *testing.T) {
	root := &models.Post{ID: "A", Path: RootPath()}

	childPath := ReplyPath(root)
	assert.Equal(t, ",A,", childPath)

	child := &models.Post{ID: "B", Path: childPath}
	grandchildPath := ReplyPath(child)
	assert.Equal(t, ",A,B,", grandchildPath)

	// The chain read left to right is exactly root..parent, and a post's
	// own id never appears in its own path.
	assert.Equal(t, []string{"A", "B"}, Ancestors(grandchildPath))
	assert.NotContains(t, Ancestors(childPath), "B")
}

func TestAncestorsOfRoot(t *testing.T) {
	assert.Empty(t, Ancestors(RootPath()))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(","))
	assert.Equal(t, 1, Depth(",A,"))
	assert.Equal(t, 3, Depth(",A,B,C,"))
}
