package handlers

import (
	"net/http"

	"github.com/OmPreetham/we-backend/internal/middleware"
	"github.com/OmPreetham/we-backend/internal/services"
	"github.com/OmPreetham/we-backend/internal/storage"
	"github.com/OmPreetham/we-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type PostHandler struct {
	posts *services.PostService
	views *services.ViewRecorder
}

func NewPostHandler(posts *services.PostService, views *services.ViewRecorder) *PostHandler {
	return &PostHandler{posts: posts, views: views}
}

type createPostRequest struct {
	Content      string  `json:"content" binding:"required,max=5000"`
	BoardID      string  `json:"boardId"`
	ParentPostID *string `json:"parentPostId"`
	Username     string  `json:"username" binding:"omitempty,min=3,max=20"`
}

func (h *PostHandler) Create(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ParentPostID == nil && req.BoardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board ID is required"})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), principal, services.CreateInput{
		BoardID:  req.BoardID,
		Content:  req.Content,
		ParentID: req.ParentPostID,
		Username: req.Username,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

type replyRequest struct {
	Content  string `json:"content" binding:"required,max=5000"`
	Username string `json:"username" binding:"omitempty,min=3,max=20"`
}

func (h *PostHandler) Reply(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)
	parentID := c.Param("id")

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), principal, services.CreateInput{
		Content:  req.Content,
		ParentID: &parentID,
		Username: req.Username,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	h.views.Record(post.ID)

	c.JSON(http.StatusOK, gin.H{
		"post":        post,
		"contentHtml": utils.RenderMarkdown(post.Content),
	})
}

func pageArgs(c *gin.Context) storage.PageArgs {
	return storage.PageArgs{
		Page:  utils.AtoiDefault(c.Query("page"), 1),
		Limit: utils.AtoiDefault(c.Query("limit"), defaultPageSize),
	}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context(), c.Query("boardId"), pageArgs(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ListByBoard(c *gin.Context) {
	posts, err := h.posts.ListByBoard(c.Request.Context(), c.Param("boardId"), pageArgs(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) UserPosts(c *gin.Context) {
	posts, err := h.posts.ListByAuthor(c.Request.Context(), c.Param("userId"), false, pageArgs(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) UserReplies(c *gin.Context) {
	posts, err := h.posts.ListByAuthor(c.Request.Context(), c.Param("userId"), true, pageArgs(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Delete(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	if err := h.posts.Delete(c.Request.Context(), c.Param("id"), principal); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
