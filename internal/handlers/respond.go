package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"package_features/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const errInvalidID = "invalid id"

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestID)}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// bindJSONOrBadRequest binds the request body into dst and writes a 400 JSON on failure.
// A missing required field is answered with requiredMsg; other failures echo the binding error.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any, requiredMsg string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if h.log != nil {
		h.log.Infow("bad_request_body", "err", err, "path", c.FullPath())
	}
	msg := "invalid request body: " + err.Error()
	if requiredMsg != "" && missingRequired(err) {
		msg = requiredMsg
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	return false
}

// missingRequired reports whether err carries a failed "required" validation.
func missingRequired(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

// parseIDParam reads the :id path parameter; it writes a 400 and returns false on failure.
func parseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// statusQuery reads the optional ?status= filter.
func statusQuery(c *gin.Context) models.Status {
	return models.Status(c.Query("status"))
}

// callerID is the user id the token gate stored, or 0 for anonymous requests.
func callerID(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}

// audit records a mutation; failures are logged and never reach the client.
func (h *Handler) audit(c *gin.Context, actorID int, typ, subject, description string, meta map[string]any) {
	if h.services.EventLog == nil {
		return
	}
	err := h.services.EventLog.Record(c.Request.Context(), models.AuditEvent{
		Type:        typ,
		ActorID:     actorID,
		Subject:     subject,
		Description: description,
		Metadata:    meta,
	})
	if err != nil && h.log != nil {
		h.log.Errorw("audit_record_failed", "err", err, "type", typ, "subject", subject)
	}
}
