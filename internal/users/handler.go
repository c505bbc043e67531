package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/session"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
)

type Handler struct {
	Svc          *Service
	Issuer       *auth.Issuer
	Sessions     session.Store
	Metrics      *metrics.Registry
	CookieSecure bool
}

func NewHandler(svc *Service, issuer *auth.Issuer, sessions session.Store, reg *metrics.Registry, cookieSecure bool) *Handler {
	return &Handler{Svc: svc, Issuer: issuer, Sessions: sessions, Metrics: reg, CookieSecure: cookieSecure}
}

// RegisterRoutes attaches the /auth endpoints to rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/logout", middleware.RequireIdentity(), h.logout)
	g.GET("/me", middleware.RequireIdentity(), h.me)
}

func (h *Handler) register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.Metrics.IncRegistration(metrics.ResultRejected)
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			h.Metrics.IncRegistration(metrics.ResultRejected)
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Missing or invalid fields", verr.Issues)
		case errors.Is(err, ErrEmailTaken):
			h.Metrics.IncRegistration(metrics.ResultRejected)
			respond.Error(c, http.StatusConflict, respond.CodeConflict, "User already exists", nil)
		default:
			h.Metrics.IncRegistration(metrics.ResultError)
			telemetry.Error("auth.register_failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"error":      err,
			})
			respond.Internal(c)
		}
		return
	}

	h.Metrics.IncRegistration(metrics.ResultOK)
	respond.Created(c, gin.H{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

func (h *Handler) login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.Metrics.IncLogin(metrics.ResultRejected)
		respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Invalid credentials", nil)
		return
	}

	ctx := c.Request.Context()
	profile, err := h.Svc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.Metrics.IncLogin(metrics.ResultRejected)
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Invalid credentials", nil)
			return
		}
		h.loginFailed(c, err)
		return
	}

	sid, err := h.Sessions.Create(ctx, profile.ID, h.Issuer.TTL())
	if err != nil {
		h.loginFailed(c, err)
		return
	}
	token, err := h.Issuer.Sign(auth.Claims{
		UserID:    profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		SessionID: sid,
	})
	if err != nil {
		_ = h.Sessions.Delete(ctx, sid)
		h.loginFailed(c, err)
		return
	}

	h.Metrics.IncLogin(metrics.ResultOK)
	middleware.SetSessionCookie(c, token, int(h.Issuer.TTL().Seconds()), h.CookieSecure)
	respond.OK(c, gin.H{
		"token": token,
		"user":  profile,
	})
}

func (h *Handler) loginFailed(c *gin.Context, err error) {
	h.Metrics.IncLogin(metrics.ResultError)
	telemetry.Error("auth.login_failed", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"error":      err,
	})
	respond.Internal(c)
}

func (h *Handler) logout(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	if err := h.Sessions.Delete(c.Request.Context(), id.SessionID); err != nil {
		telemetry.Error("auth.logout_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    id.UserID,
			"error":      err,
		})
		respond.Internal(c)
		return
	}
	middleware.ClearSessionCookie(c, h.CookieSecure)
	respond.Message(c, http.StatusOK, "Logged out")
}

func (h *Handler) me(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Unauthorized", nil)
			return
		}
		telemetry.Error("auth.me_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    id.UserID,
			"error":      err,
		})
		respond.Internal(c)
		return
	}
	respond.OK(c, user.Profile())
}
