package database

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"

	"elite_market/internal/models"
)

const auditColumns = `id, user_id, action, resource, resource_id, new_value,
	ip_address, user_agent, success, error_msg, timestamp`

type AuditStore struct {
	session *gocql.Session
}

func NewAuditStore(session *gocql.Session) *AuditStore {
	return &AuditStore{session: session}
}

// InsertAuditLog writes the entry and its per-user copy in one batch.
func (s *AuditStore) InsertAuditLog(ctx context.Context, l *models.AuditLog) error {
	batch := s.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, table := range []string{"audit_logs", "audit_logs_by_user"} {
		batch.Query(`INSERT INTO `+table+` (`+auditColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.UserID, l.Action, l.Resource, l.ResourceID, l.NewValue,
			l.IPAddress, l.UserAgent, l.Success, l.ErrorMsg, l.Timestamp)
	}
	if err := s.session.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByUser returns a user's most recent entries, newest first.
func (s *AuditStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.AuditLog, error) {
	iter := s.session.Query(`SELECT `+auditColumns+` FROM audit_logs_by_user WHERE user_id = ? LIMIT ?`, userID, limit).
		WithContext(ctx).Iter()

	logs := []models.AuditLog{}
	var l models.AuditLog
	for iter.Scan(&l.ID, &l.UserID, &l.Action, &l.Resource, &l.ResourceID, &l.NewValue,
		&l.IPAddress, &l.UserAgent, &l.Success, &l.ErrorMsg, &l.Timestamp) {
		logs = append(logs, l)
		l = models.AuditLog{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
