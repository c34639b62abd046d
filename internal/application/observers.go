package application

import (
	"context"
	"time"
)

// ReportCache caches rendered report payloads. The coordinator invalidates the
// affected patterns after every committed write, so reads may serve stale data
// only between a commit and its invalidation call, never across it.
type ReportCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	// Invalidate drops every key matching the pattern. A pattern ending in
	// "*" matches by prefix; anything else matches exactly.
	Invalidate(pattern string)
}

// AuditLog records user actions with an external collaborator. Calls happen
// after commit and are fire-and-forget: an audit failure never affects the
// business transaction it describes.
type AuditLog interface {
	LogAction(ctx context.Context, userID, username, actionType, entityType, entityID, description string) error
}
