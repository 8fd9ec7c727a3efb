package repository

import (
	"context"
	"time"
)

// AuditEntry is one audit trail record
type AuditEntry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    *string                `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

// Audit defines the best-effort audit trail storage.
// Writes are a side channel; callers must never fail an operation on audit errors.
type Audit interface {
	LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error
	GetEventsByUser(ctx context.Context, userID string, limit int) ([]AuditEntry, error)
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
