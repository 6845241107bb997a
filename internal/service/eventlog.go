package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"package_features/internal/models"
	"package_features/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = fmt.Errorf("%w: invalid time range, from must be <= to", ErrValidation)
	errMissingEventType = errors.New("audit event type is required")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

// Record appends e to the audit log.
func (s *EventLogService) Record(ctx context.Context, e models.AuditEvent) error {
	e.Type = normalizeEventType(e.Type)
	if e.Type == "" {
		return errMissingEventType
	}
	e.OccurredAt = normalizeToUTC(e.OccurredAt)
	return s.eventRepo.Append(ctx, e)
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}
