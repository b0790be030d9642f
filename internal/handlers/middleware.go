package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userId"

	errMissingAuth  = "missing Authorization header"
	errAuthFormat   = "invalid Authorization header format"
	errInvalidToken = "invalid or expired token"
)

// userIdMiddleware guards /api/v1. Both the admin client and the printer
// host authenticate with a bearer token from /auth/sign-in.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuth})
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthFormat})
		return
	}

	userId, err := h.services.ParseToken(strings.TrimSpace(token))
	if err != nil {
		if h.log != nil {
			h.log.Debugw("auth_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	c.Set(ctxUserID, userId)
	c.Next()
}
