package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/session"
	"resume-builder/internal/shared/telemetry"
)

// SessionCookie carries the identity token for browser clients.
const SessionCookie = "session"

const (
	identityKey = "identity"
	userIDKey   = "userId"
)

// Identity resolves the caller from a bearer token or the session cookie.
// Requests without a valid, live session continue anonymously.
func Identity(issuer *auth.Issuer, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" || issuer == nil {
			c.Next()
			return
		}

		claims, err := issuer.Verify(raw)
		if err != nil {
			c.Next()
			return
		}

		if sessions != nil {
			live, err := sessions.Exists(c.Request.Context(), claims.SessionID)
			if err != nil {
				telemetry.Warn("auth.session_lookup_failed", map[string]any{
					"request_id": RequestIDFromContext(c),
					"user_id":    claims.UserID,
					"error":      err,
				})
				c.Next()
				return
			}
			if !live {
				c.Next()
				return
			}
		}

		id := auth.IdentityFromClaims(claims)
		c.Set(identityKey, id)
		c.Set(userIDKey, id.UserID)
		c.Next()
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFromContext(c); !ok {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Unauthorized", nil)
			return
		}
		c.Next()
	}
}

// IdentityFromContext fetches the identity set by the Identity middleware.
func IdentityFromContext(c *gin.Context) (auth.Identity, bool) {
	if c == nil {
		return auth.Identity{}, false
	}
	val, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := val.(auth.Identity)
	if !ok || !id.Valid() {
		return auth.Identity{}, false
	}
	return id, true
}

// UserIDFromContext returns the authenticated user id or 0.
func UserIDFromContext(c *gin.Context) int64 {
	id, _ := IdentityFromContext(c)
	return id.UserID
}

func tokenFromRequest(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// SetSessionCookie stores the identity token in an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, maxAgeSeconds int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAgeSeconds, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
