package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

const visitorIDKey = "visitor_id"

// ResolveVisitorID picks the identity used to dedupe views and likes: the
// first X-Forwarded-For entry, then X-Real-IP, then the peer address host.
func ResolveVisitorID(header http.Header, remoteAddr string) string {
	if fwd := header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return domain.UnknownVisitor
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	return remoteAddr
}

// Visitor stores the resolved visitor identity in the gin context.
func Visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(visitorIDKey, ResolveVisitorID(c.Request.Header, c.Request.RemoteAddr))
		c.Next()
	}
}

// VisitorID returns the identity stored by Visitor, or "unknown".
func VisitorID(c *gin.Context) string {
	if id := c.GetString(visitorIDKey); id != "" {
		return id
	}
	return domain.UnknownVisitor
}
