package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/session"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

type Handler struct {
	Svc          *Service
	Sessions     session.Store
	CookieSecure bool
}

func NewHandler(svc *Service, sessions session.Store, cookieSecure bool) *Handler {
	return &Handler{Svc: svc, Sessions: sessions, CookieSecure: cookieSecure}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/account", middleware.RequireIdentity(), h.deleteAccount)
}

func (h *Handler) deleteAccount(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	ctx := c.Request.Context()

	result, err := h.Svc.DeleteAccount(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Account not found", nil)
			return
		}
		telemetry.Error("account.delete_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    id.UserID,
			"error":      err,
		})
		respond.Internal(c)
		return
	}

	if h.Sessions != nil {
		if err := h.Sessions.DeleteByUser(ctx, id.UserID); err != nil {
			telemetry.Warn("account.session_revoke_failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"user_id":    id.UserID,
				"error":      err,
			})
		}
	}
	middleware.ClearSessionCookie(c, h.CookieSecure)
	telemetry.Info("account.deleted", map[string]any{
		"request_id":      middleware.RequestIDFromContext(c),
		"user_id":         id.UserID,
		"deleted_resumes": result.DeletedResumes,
	})
	respond.OK(c, gin.H{
		"message":        "Account deleted",
		"deletedResumes": result.DeletedResumes,
	})
}
