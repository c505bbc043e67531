package pages

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/telemetry"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{"login", "register", "dashboard", "resume", "not_found"}

// Handler renders the server-side pages.
type Handler struct {
	Resumes *resumes.Service
	pages   map[string]*template.Template
}

// NewHandler parses the embedded templates.
func NewHandler(svc *resumes.Service) (*Handler, error) {
	funcs := template.FuncMap{
		"month":     resumes.FormatMonth,
		"dateRange": resumes.DateRange,
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Handler{Resumes: svc, pages: pages}, nil
}

// RegisterRoutes attaches the page routes. The router installs middleware.PageGuard globally.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	r.GET("/login", h.login)
	r.GET("/register", h.register)
	r.GET("/dashboard", h.dashboard)
	r.GET("/resume/new", h.newResume)
	r.GET("/resume/:id", h.showResume)
}

type pageData struct {
	SignedIn   bool
	Registered bool
	Resumes    []resumes.Resume
	Resume     *resumes.Resume
}

func (h *Handler) render(c *gin.Context, status int, name string, data pageData) {
	_, data.SignedIn = middleware.IdentityFromContext(c)
	c.Render(status, render.HTML{Template: h.pages[name], Name: "layout", Data: data})
}

func (h *Handler) login(c *gin.Context) {
	h.render(c, http.StatusOK, "login", pageData{Registered: c.Query("registered") == "true"})
}

func (h *Handler) register(c *gin.Context) {
	h.render(c, http.StatusOK, "register", pageData{})
}

func (h *Handler) dashboard(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	list, err := h.Resumes.List(c.Request.Context(), id)
	if err != nil {
		h.failed(c, err)
		return
	}
	h.render(c, http.StatusOK, "dashboard", pageData{Resumes: list})
}

func (h *Handler) newResume(c *gin.Context) {
	h.render(c, http.StatusOK, "resume", pageData{})
}

func (h *Handler) showResume(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	resumeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || resumeID <= 0 {
		h.render(c, http.StatusNotFound, "not_found", pageData{})
		return
	}
	res, err := h.Resumes.Get(c.Request.Context(), id, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			h.render(c, http.StatusNotFound, "not_found", pageData{})
			return
		}
		h.failed(c, err)
		return
	}
	h.render(c, http.StatusOK, "resume", pageData{Resume: &res})
}

// NotFound renders the not found page for unmatched browser routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found", pageData{})
}

func (h *Handler) failed(c *gin.Context, err error) {
	telemetry.Error("page.render_failed", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"user_id":    middleware.UserIDFromContext(c),
		"path":       c.Request.URL.Path,
		"error":      err,
	})
	c.String(http.StatusInternalServerError, "Internal server error")
}
