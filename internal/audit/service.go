// Package audit records "action performed by identity X on target Y"
// events. Appends are best-effort: a failed write is logged and swallowed,
// never surfaced to the operation that triggered it.
package audit

import (
	"log"

	"github.com/imeelinew/paper-library/internal/database/audit"
	"github.com/imeelinew/paper-library/internal/entities"
)

type Service struct {
	repo *audit.Repository
}

func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an audit entry. userID may be nil for unauthenticated
// actions. Errors are swallowed by design.
func (s *Service) Record(userID *uint, action, target string) {
	entry := &entities.LogEntry{
		UserID: userID,
		Action: action,
		Target: target,
	}
	if err := s.repo.Append(entry); err != nil {
		log.Printf("Failed to write audit entry %s %s: %v", action, target, err)
	}
}

// List returns paginated log entries, newest first.
func (s *Service) List(offset, limit int) ([]entities.LogEntry, int64, error) {
	return s.repo.List(offset, limit)
}
