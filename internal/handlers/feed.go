package handlers

import (
	"net/http"

	"github.com/OmPreetham/we-backend/internal/middleware"
	"github.com/OmPreetham/we-backend/internal/services"
	"github.com/OmPreetham/we-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const defaultTrendingLimit = 25

type FeedHandler struct {
	feeds  *services.FeedService
	boards *services.BoardService
}

func NewFeedHandler(feeds *services.FeedService, boards *services.BoardService) *FeedHandler {
	return &FeedHandler{feeds: feeds, boards: boards}
}

func (h *FeedHandler) Trending(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), defaultTrendingLimit)

	posts, err := h.feeds.Trending(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) Following(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	boardIDs, err := h.boards.FollowedIDs(c.Request.Context(), principal.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	posts, err := h.feeds.Following(c.Request.Context(), principal.UserID, boardIDs, pageArgs(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) ForYou(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	limit := utils.AtoiDefault(c.Query("limit"), defaultTrendingLimit)

	boardIDs, err := h.boards.FollowedIDs(c.Request.Context(), principal.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	posts, err := h.feeds.ForYou(c.Request.Context(), principal.UserID, boardIDs, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) Bookmarked(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	posts, err := h.feeds.Bookmarked(c.Request.Context(), principal.UserID, pageArgs(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
