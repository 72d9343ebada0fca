package handlers

import (
	"net/http"

	"github.com/OmPreetham/we-backend/internal/middleware"
	"github.com/OmPreetham/we-backend/internal/models"
	"github.com/OmPreetham/we-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
	posts *services.PostService
}

func NewVoteHandler(votes *services.VoteService, posts *services.PostService) *VoteHandler {
	return &VoteHandler{votes: votes, posts: posts}
}

func (h *VoteHandler) Upvote(c *gin.Context) {
	h.cast(c, models.VoteUp)
}

func (h *VoteHandler) Downvote(c *gin.Context) {
	h.cast(c, models.VoteDown)
}

func (h *VoteHandler) UserUpvotes(c *gin.Context) {
	h.listVoted(c, models.VoteUp)
}

func (h *VoteHandler) UserDownvotes(c *gin.Context) {
	h.listVoted(c, models.VoteDown)
}

func (h *VoteHandler) listVoted(c *gin.Context, kind models.VoteKind) {
	posts, err := h.votes.ListVoted(c.Request.Context(), c.Param("userId"), kind, pageArgs(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// cast applies the vote and echoes the resulting state with fresh
// counters, so clients can render without a second round trip.
func (h *VoteHandler) cast(c *gin.Context, kind models.VoteKind) {
	principal, _ := middleware.CurrentPrincipal(c)
	postID := c.Param("id")

	state, err := h.votes.Cast(c.Request.Context(), principal.UserID, postID, kind)
	if err != nil {
		writeError(c, err)
		return
	}

	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":         state,
		"upvoteCount":   post.UpvoteCount,
		"downvoteCount": post.DownvoteCount,
	})
}
