package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"package_features/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

var _ EventRepo = (*EventRepository)(nil)

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventRepository) Append(ctx context.Context, e models.AuditEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}
	e.Type = strings.ToUpper(strings.TrimSpace(e.Type))

	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		return fmt.Errorf("insert audit event %s: %w", e.Type, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *EventRepository) List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditEvent{})
	if !from.IsZero() {
		q = q.Where("occurred_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		q = q.Where("occurred_at <= ?", to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		q = q.Where("type = ?", typ)
	}

	out := make([]models.AuditEvent, 0, 64)
	if err := q.Order("occurred_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	for i := range out {
		out[i].OccurredAt = out[i].OccurredAt.UTC()
	}
	return out, nil
}
