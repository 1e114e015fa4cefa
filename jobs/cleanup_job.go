package jobs

import (
	"log"
	"time"

	"bricool-server/services"
)

// TokenCleanupJob periodically deletes expired and revoked refresh tokens.
type TokenCleanupJob struct {
	jwt      *services.JWTService
	interval time.Duration
	stop     chan struct{}
}

// NewTokenCleanupJob creates a new cleanup job
func NewTokenCleanupJob(jwt *services.JWTService, interval time.Duration) *TokenCleanupJob {
	return &TokenCleanupJob{
		jwt:      jwt,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the cleanup loop until Stop is called.
func (j *TokenCleanupJob) Start() {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := j.jwt.CleanupExpiredTokens(); err != nil {
					log.Printf("⚠️ Token cleanup failed: %v", err)
				}
			case <-j.stop:
				return
			}
		}
	}()
	log.Printf("🧹 Token cleanup job started (every %s)", j.interval)
}

// Stop terminates the cleanup loop.
func (j *TokenCleanupJob) Stop() {
	close(j.stop)
}
