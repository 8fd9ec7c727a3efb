package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HabitQuest_Go/internal/repository"
)

// AuditRepository implements repository.Audit using PostgreSQL
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// LogEvent appends one audit record
func (r *AuditRepository) LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error {
	var userUUID interface{}
	if userID != nil {
		parsed, err := parseUserUUID(*userID)
		if err != nil {
			return err
		}
		userUUID = parsed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	if _, err := r.db.Exec(ctx, sqlInsertAuditEvent, eventType, userUUID, data); err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}
	return nil
}

// GetEventsByUser returns the user's most recent audit records
func (r *AuditRepository) GetEventsByUser(ctx context.Context, userID string, limit int) ([]repository.AuditEntry, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlSelectAuditByUser, userUUID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit events: %w", err)
	}
	defer rows.Close()

	var entries []repository.AuditEntry
	for rows.Next() {
		var e repository.AuditEntry
		var payload []byte
		if err := rows.Scan(&e.ID, &e.EventType, &e.UserID, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit payload: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CleanupOldEvents deletes audit records older than the retention window
func (r *AuditRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.db.Exec(ctx, sqlCleanupAudit, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup audit events: %w", err)
	}
	return tag.RowsAffected(), nil
}
