package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"package_features/internal/models"
	"package_features/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errBadRange    = "'from' must be <= 'to'"
	errLoadEvents  = "failed to load events"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// eventFilterFromQuery reads from/to/type. A date-only 'to' covers that whole day.
func eventFilterFromQuery(c *gin.Context) (service.LogFilter, string) {
	var f service.LogFilter
	f.Type = strings.ToUpper(strings.TrimSpace(c.Query("type")))

	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, errFromInvalid
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, errToInvalid
		}
		if isDateOnly(qs) {
			t = t.Add(24*time.Hour - time.Nanosecond).UTC()
		}
		f.To = t
	}
	return f, ""
}

// @Summary      List audit events
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is treated as end of day inclusive.
// @Tags         events
// @Produce      json
// @Param        from  query  string  false  "Start of range"  example(2025-08-01)
// @Param        to    query  string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type  query  string  false  "Event type"  Enums(USER_CREATED,USER_UPDATED,USER_DELETED,USER_LOGIN,FEATURE_CREATED,FEATURE_UPDATED,FEATURE_DELETED)
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /events [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	filter, msg := eventFilterFromQuery(c)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadRange})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadEvents, "events_list_failed", err,
			"from", filter.From, "to", filter.To, "type", filter.Type)
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
