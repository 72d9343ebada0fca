package router

import (
	"github.com/OmPreetham/we-backend/internal/handlers"
	"github.com/OmPreetham/we-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything RegisterRoutes wires up.
type Handlers struct {
	Posts     *handlers.PostHandler
	Votes     *handlers.VoteHandler
	Bookmarks *handlers.BookmarkHandler
	Feeds     *handlers.FeedHandler
	Boards    *handlers.BoardHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(cors.Default())

	api := r.Group("/api")

	// Public routes
	api.GET("/posts", h.Posts.List)
	api.GET("/posts/trending", h.Feeds.Trending)
	api.GET("/posts/:id", h.Posts.Get)
	api.GET("/posts/board/:boardId", h.Posts.ListByBoard)
	api.GET("/posts/user/:userId", h.Posts.UserPosts)
	api.GET("/posts/user/:userId/replies", h.Posts.UserReplies)
	api.GET("/posts/user/:userId/upvotes", h.Votes.UserUpvotes)
	api.GET("/posts/user/:userId/downvotes", h.Votes.UserDownvotes)
	api.GET("/boards", h.Boards.List)
	api.GET("/boards/:id", h.Boards.Get)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", h.Posts.Create)
		authorized.POST("/posts/:id/reply", h.Posts.Reply)
		authorized.DELETE("/posts/:id", h.Posts.Delete)

		authorized.PUT("/posts/:id/upvote", h.Votes.Upvote)
		authorized.PUT("/posts/:id/downvote", h.Votes.Downvote)

		authorized.POST("/posts/:id/bookmark", h.Bookmarks.Toggle)
		authorized.GET("/posts/:id/isBookmarked", h.Bookmarks.IsBookmarked)
		authorized.GET("/posts/bookmarks", h.Feeds.Bookmarked)

		authorized.GET("/posts/following", h.Feeds.Following)
		authorized.GET("/posts/foryou", h.Feeds.ForYou)

		authorized.POST("/boards", h.Boards.Create)
		authorized.PUT("/boards/:id", h.Boards.Update)
		authorized.DELETE("/boards/:id", h.Boards.Delete)
		authorized.POST("/boards/:id/follow", h.Boards.Follow)
		authorized.DELETE("/boards/:id/unfollow", h.Boards.Unfollow)
		authorized.GET("/boards/following", h.Boards.Followed)
	}
}
