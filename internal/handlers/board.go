package handlers

import (
	"net/http"

	"github.com/OmPreetham/we-backend/internal/middleware"
	"github.com/OmPreetham/we-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards *services.BoardService
}

func NewBoardHandler(boards *services.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type createBoardRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
}

func (h *BoardHandler) Create(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.boards.Create(c.Request.Context(), principal, req.Title, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *BoardHandler) Get(c *gin.Context) {
	board, err := h.boards.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

type updateBoardRequest struct {
	Title       string `json:"title" binding:"omitempty,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

func (h *BoardHandler) Update(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	var req updateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.boards.Update(c.Request.Context(), principal, c.Param("id"), req.Title, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	if err := h.boards.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

func (h *BoardHandler) Follow(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	err := h.boards.Follow(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board followed"})
}

func (h *BoardHandler) Unfollow(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	err := h.boards.Unfollow(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board unfollowed"})
}

func (h *BoardHandler) Followed(c *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(c)

	boards, err := h.boards.Followed(c.Request.Context(), principal.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}
