// Package threads computes and reads the materialized paths that encode
// reply ancestry. A path lists the ancestor ids from root to parent, each
// terminated by a comma; roots hold just ",".
package threads

import (
	"strings"

	"github.com/OmPreetham/we-backend/internal/models"
)

// RootPath returns the path of a post that starts a thread.
func RootPath() string {
	return models.RootPath
}

// ReplyPath returns the path of a direct reply to parent. The parent's own
// id is appended here, never to the parent's path.
func ReplyPath(parent *models.Post) string {
	return parent.Path + parent.ID + ","
}

// Ancestors returns the ancestor ids encoded in path, root first. A root
// path yields an empty slice.
func Ancestors(path string) []string {
	trimmed := strings.Trim(path, ",")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, ",")
}

// Depth is the number of ancestors above the post. Roots are depth 0.
func Depth(path string) int {
	return len(Ancestors(path))
}
