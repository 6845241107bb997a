package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"package_features/internal/models"
	"package_features/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventCursor remembers what a stream has already delivered.
// Range queries are inclusive, so ids at the boundary timestamp are tracked.
type eventCursor struct {
	since  time.Time
	atEdge map[string]struct{}
}

func newEventCursor(since time.Time) *eventCursor {
	return &eventCursor{since: since.UTC(), atEdge: map[string]struct{}{}}
}

// advance drops already delivered events and moves the cursor past the rest.
func (cur *eventCursor) advance(events []models.AuditEvent) []models.AuditEvent {
	fresh := make([]models.AuditEvent, 0, len(events))
	for _, e := range events {
		if e.OccurredAt.Before(cur.since) {
			continue
		}
		if e.OccurredAt.Equal(cur.since) {
			if _, seen := cur.atEdge[e.EventID]; seen {
				continue
			}
		}
		fresh = append(fresh, e)
	}
	for _, e := range fresh {
		if e.OccurredAt.After(cur.since) {
			cur.since = e.OccurredAt
			cur.atEdge = map[string]struct{}{}
		}
		cur.atEdge[e.EventID] = struct{}{}
	}
	return fresh
}

// @Summary      Stream audit events
// @Description  Upgrades to WebSocket and pushes {"type":"events","data":[...]} whenever new events are recorded.
// @Tags         events
// @Param        interval     query  string  false  "Poll interval, e.g. 2s (max 10s)"
// @Param        interval_ms  query  int     false  "Poll interval in milliseconds (max 10000)"
// @Param        since        query  string  false  "Replay events from this time (RFC3339 or YYYY-MM-DD)"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /ws/events [get]
// @Security     BearerAuth
func (h *Handler) wsEvents(c *gin.Context) {
	interval := h.parseInterval(c)
	since := time.Now().UTC()
	if qs := c.Query("since"); qs != "" {
		if t, err := parseQueryTime(qs); err == nil {
			since = t
		}
	}
	cursor := newEventCursor(since)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendEvents(ctx, conn, cursor); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendEvents(ctx, conn, cursor); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendEvents writes events recorded since the cursor. Nothing is written when there are none.
// A failed lookup is reported to the client as an error envelope and keeps the stream open.
func (h *Handler) sendEvents(ctx context.Context, conn *websocket.Conn, cursor *eventCursor) error {
	events, err := h.services.EventLog.List(ctx, service.LogFilter{From: cursor.since})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_list_events_failed", "err", err)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(wsEnvelope{Type: "error", Error: errLoadEvents})
	}
	fresh := cursor.advance(events)
	if len(fresh) == 0 {
		return nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "events", Data: fresh})
}
