package services

import (
	"context"
	"log"

	"github.com/gocql/gocql"

	"elite_market/internal/clock"
	"elite_market/internal/models"
)

type requestMetaKey struct{}

type requestMeta struct {
	IP        string
	UserAgent string
}

// WithRequestMeta attaches the caller's address and agent for audit entries.
func WithRequestMeta(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, requestMeta{IP: ip, UserAgent: userAgent})
}

// RequestMetaFrom returns what WithRequestMeta attached, if anything.
func RequestMetaFrom(ctx context.Context) (ip, userAgent string) {
	meta, _ := ctx.Value(requestMetaKey{}).(requestMeta)
	return meta.IP, meta.UserAgent
}

type auditTrail struct {
	repo  AuditRepository
	clock clock.Clock
}

// record writes one entry; failures are logged, never returned.
func (a auditTrail) record(ctx context.Context, userID, action, resource, resourceID, newValue string, failure error) {
	if a.repo == nil {
		return
	}
	ip, userAgent := RequestMetaFrom(ctx)
	entry := &models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		NewValue:   newValue,
		IPAddress:  ip,
		UserAgent:  userAgent,
		Success:    failure == nil,
		Timestamp:  a.clock.Now(),
	}
	if failure != nil {
		entry.ErrorMsg = failure.Error()
	}
	if err := a.repo.InsertAuditLog(ctx, entry); err != nil {
		log.Printf("❌ Audit log failed for %s %s: %v", action, resourceID, err)
	}
}
