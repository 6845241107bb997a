package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys populated by the token gate.
const (
	ctxUserID = "userId"
	ctxEmail  = "email"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxRequestID    = "requestId"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	id, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, id.UserID)
	c.Set(ctxEmail, id.Email)
	c.Next()
}

// requestID echoes the caller's X-Request-ID or assigns a fresh one.
func requestID(c *gin.Context) {
	rid := c.GetHeader(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(ctxRequestID, rid)
	c.Header(requestIDHeader, rid)
	c.Next()
}
