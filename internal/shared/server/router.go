package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/account"
	"resume-builder/internal/pages"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/session"
	"resume-builder/internal/users"
)

// RouterDeps carries everything NewRouter wires. Nil handlers are skipped.
type RouterDeps struct {
	Config         config.Config
	Issuer         *auth.Issuer
	Sessions       session.Store
	Metrics        *metrics.Registry
	Health         *health.Service
	UserHandler    *users.Handler
	ResumeHandler  *resumes.Handler
	AccountHandler *account.Handler
	PageHandler    *pages.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Metrics(deps.Metrics),
		middleware.Identity(deps.Issuer, deps.Sessions),
		middleware.PageGuard(),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	r.GET("/healthz", func(c *gin.Context) {
		status, ok := healthSvc.Status(c.Request.Context())
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, gin.H{"ok": ok, "checks": status})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Handler())
	}

	api := r.Group("/api")
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	if deps.PageHandler != nil {
		deps.PageHandler.RegisterRoutes(r)
	}
	r.NoRoute(func(c *gin.Context) {
		if deps.PageHandler == nil || middleware.Classify(c.Request.URL.Path) == middleware.RouteExcluded {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Not found", nil)
			return
		}
		deps.PageHandler.NotFound(c)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
