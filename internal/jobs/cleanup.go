package jobs

import (
	"log"
	"time"

	"github.com/Vamap91/carglass-assistente/internal/cache"
	"github.com/Vamap91/carglass-assistente/internal/services"
)

// CleanupJob periodically evicts idle sessions and sweeps expired
// cache entries. Both stores also expire lazily; this job just keeps
// memory flat between requests.
type CleanupJob struct {
	sessions *services.SessionManager
	cache    *cache.Cache
	interval time.Duration
	done     chan struct{}
}

// NewCleanupJob creates a cleanup job with the given sweep interval.
func NewCleanupJob(sessions *services.SessionManager, c *cache.Cache, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		sessions: sessions,
		cache:    c,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (j *CleanupJob) Start() {
	log.Printf("🧹 Cleanup job started (every %s)", j.interval)
	go j.run()
}

// Stop halts the sweep loop.
func (j *CleanupJob) Stop() {
	close(j.done)
	log.Println("🧹 Cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			evicted := j.sessions.EvictExpired()
			swept := j.cache.Cleanup()
			if evicted > 0 || swept > 0 {
				log.Printf("🧹 Cleanup: %d sessions evicted, %d cache entries swept", evicted, swept)
			}
		case <-j.done:
			return
		}
	}
}
