package models

import "time"

// Audit event types.
const (
	EventUserCreated    = "USER_CREATED"
	EventUserUpdated    = "USER_UPDATED"
	EventUserDeleted    = "USER_DELETED"
	EventUserLogin      = "USER_LOGIN"
	EventFeatureCreated = "FEATURE_CREATED"
	EventFeatureUpdated = "FEATURE_UPDATED"
	EventFeatureDeleted = "FEATURE_DELETED"
)

// AuditEvent is a single entry of the mutation log.
type AuditEvent struct {
	EventID     string         `json:"event_id" gorm:"column:id;primaryKey;size:36"`
	OccurredAt  time.Time      `json:"occurred_at" gorm:"index;not null"`
	Type        string         `json:"type" gorm:"index;size:32;not null"`
	ActorID     int            `json:"actor_id,omitempty"` // 0 when the request was anonymous
	Subject     string         `json:"subject"`            // e.g. "user:3", "feature:7"
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty" gorm:"column:meta;type:text;serializer:json"`
}
