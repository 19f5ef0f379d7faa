package jobs

import (
	"log"
	"time"

	"github.com/fondago/fonda-backend/internal/services"
)

// DefaultCleanupInterval is how often the expired-session sweep runs
const DefaultCleanupInterval = 10 * time.Minute

// SessionCleanupJob periodically removes expired sessions. The sweep
// only deletes rows whose expiry has already passed, so it is safe to
// run alongside live traffic.
type SessionCleanupJob struct {
	sessions *services.SessionService
	interval time.Duration
	stop     chan struct{}
}

// NewSessionCleanupJob creates the cleanup job. A zero interval falls
// back to DefaultCleanupInterval.
func NewSessionCleanupJob(sessions *services.SessionService, interval time.Duration) *SessionCleanupJob {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &SessionCleanupJob{
		sessions: sessions,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the background sweep
func (j *SessionCleanupJob) Start() {
	log.Printf("Starting session cleanup job (every %s)", j.interval)
	go j.run()
}

// Stop halts the background sweep
func (j *SessionCleanupJob) Stop() {
	close(j.stop)
	log.Println("Stopping session cleanup job...")
}

func (j *SessionCleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := j.sessions.CleanupExpired(time.Now())
			if err != nil {
				log.Printf("❌ Session cleanup failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("🧹 Cleaned up %d expired sessions", removed)
			}
		case <-j.stop:
			return
		}
	}
}
