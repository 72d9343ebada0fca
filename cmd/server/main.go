package main

import (
	"context"
	"log"
	"os"

	"github.com/OmPreetham/we-backend/internal/cache"
	"github.com/OmPreetham/we-backend/internal/handlers"
	"github.com/OmPreetham/we-backend/internal/router"
	"github.com/OmPreetham/we-backend/internal/services"
	"github.com/OmPreetham/we-backend/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=we port=5432 sslmode=disable"
	}
	store, err := postgres.New(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()
	log.Println("Database connection established")

	cacheStore := newCacheStore()
	defer cacheStore.Close()

	views := services.NewViewRecorder(store)
	defer views.Close()

	postService := services.NewPostService(store)
	voteService := services.NewVoteService(store)
	boardService := services.NewBoardService(store)
	bookmarkService := services.NewBookmarkService(store, cacheStore)
	feedService := services.NewFeedService(store, cacheStore, cache.DefaultTTLConfig)

	r := gin.Default()
	router.RegisterRoutes(r, router.Handlers{
		Posts:     handlers.NewPostHandler(postService, views),
		Votes:     handlers.NewVoteHandler(voteService, postService),
		Bookmarks: handlers.NewBookmarkHandler(bookmarkService),
		Feeds:     handlers.NewFeedHandler(feedService, boardService),
		Boards:    handlers.NewBoardHandler(boardService),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("we-backend server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// newCacheStore prefers Redis when REDIS_URL is set, so multiple server
// processes share one cache; otherwise an in-process LRU serves a single
// instance.
func newCacheStore() cache.Store {
	if url := os.Getenv("REDIS_URL"); url != "" {
		redisCache, err := cache.NewRedis(context.Background(), url)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		log.Println("Connected to Redis")
		return redisCache
	}

	memCache, err := cache.NewMemory(500)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return memCache
}
