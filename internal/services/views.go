package services

import (
	"context"
	"log"
	"time"

	"github.com/OmPreetham/we-backend/internal/storage"
)

const (
	viewQueueSize     = 1000
	viewFlushInterval = 500 * time.Millisecond
	viewFlushBatch    = 100
)

// ViewRecorder batches view-count increments so a hot thread does not turn
// every read into a write. Increments commute, so batching only delays
// them; an increment lost at shutdown is tolerated.
type ViewRecorder struct {
	store storage.Store
	queue chan string
	done  chan struct{}
}

func NewViewRecorder(store storage.Store) *ViewRecorder {
	r := &ViewRecorder{
		store: store,
		queue: make(chan string, viewQueueSize),
		done:  make(chan struct{}),
	}
	go r.worker()
	return r
}

// Record schedules one view for the post. Never blocks; when the queue is
// full the view is dropped.
func (r *ViewRecorder) Record(postID string) {
	select {
	case r.queue <- postID:
	default:
		log.Printf("view queue full, dropping view for post %s", postID)
	}
}

func (r *ViewRecorder) worker() {
	pending := make(map[string]int)
	ticker := time.NewTicker(viewFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case postID := <-r.queue:
			pending[postID]++
			if len(pending) >= viewFlushBatch {
				r.flush(pending)
				pending = make(map[string]int)
			}
		case <-ticker.C:
			if len(pending) > 0 {
				r.flush(pending)
				pending = make(map[string]int)
			}
		case <-r.done:
			// Drain whatever is already queued, then flush once.
			for {
				select {
				case postID := <-r.queue:
					pending[postID]++
				default:
					r.flush(pending)
					return
				}
			}
		}
	}
}

func (r *ViewRecorder) flush(pending map[string]int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for postID, n := range pending {
		if err := r.store.AddViews(ctx, postID, n); err != nil {
			log.Printf("failed to record %d views for post %s: %v", n, postID, err)
		}
	}
}

// Close flushes queued views and stops the worker.
func (r *ViewRecorder) Close() {
	close(r.done)
}
