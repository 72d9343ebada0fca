package handlers

import (
	"net/http"

	"github.com/OmPreetham/we-backend/internal/middleware"
	"github.com/OmPreetham/we-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	bookmarks *services.BookmarkService
}

func NewBookmarkHandler(bookmarks *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

// Toggle bookmarks the post, or removes the bookmark if one exists.
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	bookmarked, err := h.bookmarks.Toggle(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	message := "Post removed from bookmarks"
	if bookmarked {
		message = "Post bookmarked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked, "message": message})
}

func (h *BookmarkHandler) IsBookmarked(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	bookmarked, err := h.bookmarks.IsBookmarked(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}
