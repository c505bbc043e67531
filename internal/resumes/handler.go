package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc     *Service
	Metrics *metrics.Registry
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, reg *metrics.Registry) *Handler {
	return &Handler{Svc: svc, Metrics: reg}
}

// RegisterRoutes attaches resume routes to the router group. All of them require an identity.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/resumes", middleware.RequireIdentity())
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	list, err := h.Svc.List(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "list", id, 0, err)
		return
	}
	h.Metrics.IncResumeOp("list", metrics.ResultOK)
	respond.OK(c, toResponses(list))
}

func (h *Handler) create(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	var req ResumeRequest
	// An empty body creates a blank resume.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.Metrics.IncResumeOp("create", metrics.ResultRejected)
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid request body", nil)
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), id, req.Document)
	if err != nil {
		h.fail(c, "create", id, 0, err)
		return
	}
	c.Set(middleware.ResumeIDKey, res.ID)
	h.Metrics.IncResumeOp("create", metrics.ResultOK)
	respond.Created(c, toResponse(res))
}

func (h *Handler) get(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	resumeID, ok := h.resumeID(c, "get")
	if !ok {
		return
	}
	res, err := h.Svc.Get(c.Request.Context(), id, resumeID)
	if err != nil {
		h.fail(c, "get", id, resumeID, err)
		return
	}
	h.Metrics.IncResumeOp("get", metrics.ResultOK)
	respond.OK(c, toResponse(res))
}

func (h *Handler) update(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	resumeID, ok := h.resumeID(c, "update")
	if !ok {
		return
	}
	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Metrics.IncResumeOp("update", metrics.ResultRejected)
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Invalid request body", nil)
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), id, resumeID, req.Document, req.Version)
	if err != nil {
		h.fail(c, "update", id, resumeID, err)
		return
	}
	h.Metrics.IncResumeOp("update", metrics.ResultOK)
	respond.OK(c, toResponse(res))
}

func (h *Handler) delete(c *gin.Context) {
	id, _ := middleware.IdentityFromContext(c)
	resumeID, ok := h.resumeID(c, "delete")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, resumeID); err != nil {
		h.fail(c, "delete", id, resumeID, err)
		return
	}
	h.Metrics.IncResumeOp("delete", metrics.ResultOK)
	respond.Message(c, http.StatusOK, "Resume deleted")
}

// resumeID parses the path id. Anything that is not a positive integer cannot
// name a resume, so it is answered like a missing one.
func (h *Handler) resumeID(c *gin.Context, op string) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.Metrics.IncResumeOp(op, metrics.ResultRejected)
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Resume not found", nil)
		return 0, false
	}
	c.Set(middleware.ResumeIDKey, id)
	return id, true
}

func (h *Handler) fail(c *gin.Context, op string, id auth.Identity, resumeID int64, err error) {
	var verr *validation.Error
	switch {
	case errors.Is(err, ErrNotFound):
		h.Metrics.IncResumeOp(op, metrics.ResultRejected)
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "Resume not found", nil)
	case errors.Is(err, ErrVersionConflict):
		h.Metrics.IncResumeOp(op, metrics.ResultRejected)
		respond.Error(c, http.StatusConflict, respond.CodeConflict, "Resume was modified by another request", nil)
	case errors.Is(err, ErrUnauthenticated):
		h.Metrics.IncResumeOp(op, metrics.ResultRejected)
		respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Unauthorized", nil)
	case errors.As(err, &verr):
		h.Metrics.IncResumeOp(op, metrics.ResultRejected)
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "Missing or invalid fields", verr.Issues)
	default:
		h.Metrics.IncResumeOp(op, metrics.ResultError)
		fields := map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    id.UserID,
			"op":         op,
			"error":      err,
		}
		if resumeID > 0 {
			fields["resume_id"] = resumeID
		}
		telemetry.Error("resume.store_failed", fields)
		respond.Internal(c)
	}
}
