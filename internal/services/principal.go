package services

import "github.com/OmPreetham/we-backend/internal/models"

// Principal is the authenticated caller as the auth layer hands it to us.
// How the token was issued and verified is not this package's business.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// CanDelete is the single capability check for post deletion: the author,
// a moderator or an admin. Route-level role branching funnels through here.
func CanDelete(post *models.Post, p Principal) bool {
	if p.UserID == post.AuthorID {
		return true
	}
	return p.Role == RoleModerator || p.Role == RoleAdmin
}
