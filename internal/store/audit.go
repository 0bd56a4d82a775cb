package store

import (
	"context"

	"github.com/noah-isme/edupro-go-api/internal/models"
)

// Record appends an audit entry and persists. A nil userID resolves to the
// current identity when one is logged in; it stays nil otherwise, e.g. for a
// failed login.
func (s *Store) Record(ctx context.Context, action, details string, userID *int64) (models.SystemLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.record(action, details, userID)
	if err := s.persist(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

// record prepends the entry and truncates to the cap. Callers hold the mutex
// and persist afterwards, so a mutation and its audit entry always land in
// the same write.
func (s *Store) record(action, details string, userID *int64) models.SystemLog {
	if userID == nil && s.currentUser != nil {
		id := s.currentUser.ID
		userID = &id
	}

	entry := models.SystemLog{
		ID:        s.allocateID(),
		Timestamp: s.now(),
		Action:    action,
		Details:   details,
		UserID:    userID,
		IP:        "local",
	}

	s.doc.SystemLogs = append([]models.SystemLog{entry}, s.doc.SystemLogs...)
	if len(s.doc.SystemLogs) > s.auditCap {
		s.doc.SystemLogs = s.doc.SystemLogs[:s.auditCap]
	}
	return entry
}

// ListSystemLogs returns up to limit entries, newest first, optionally
// filtered by action tag. A non-positive limit returns everything retained.
func (s *Store) ListSystemLogs(limit int, action string) []models.SystemLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SystemLog, 0, len(s.doc.SystemLogs))
	for _, entry := range s.doc.SystemLogs {
		if action != "" && entry.Action != action {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// SystemLogCount returns the number of retained audit entries.
func (s *Store) SystemLogCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.doc.SystemLogs)
}
