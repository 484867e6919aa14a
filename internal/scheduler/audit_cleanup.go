// Package scheduler runs the periodic audit log retention cleanup. The
// overdue transition on borrow records deliberately does NOT live here: it
// is computed lazily on the read path, so record state never depends on a
// timer having fired.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/imeelinew/paper-library/internal/database/audit"
)

// AuditCleanupScheduler deletes audit log entries past the retention
// window on a cron schedule.
type AuditCleanupScheduler struct {
	repo          *audit.Repository
	schedule      string
	retentionDays int

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewAuditCleanupScheduler(repo *audit.Repository, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		repo:          repo,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start begins the scheduler. Disabled when retention is non-positive.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.retentionDays <= 0 {
		log.Printf("Audit cleanup scheduler: disabled (retention %d days)", s.retentionDays)
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runCleanup); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit cleanup scheduler: started with schedule %q, retention %d days", s.schedule, s.retentionDays)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

func (s *AuditCleanupScheduler) runCleanup() {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.repo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Audit cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Audit cleanup removed %d entries older than %s", deleted, cutoff.Format("2006-01-02"))
	}
}
