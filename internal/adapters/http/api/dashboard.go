package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/cowin/internal/domain/session"
	"github.com/okian/cowin/internal/view"
	"github.com/okian/cowin/pkg/logger"
	"github.com/okian/cowin/pkg/metrics"
)

// DashboardHandler serves the server-rendered dashboard pages.
type DashboardHandler struct {
	deps   Dependencies
	engine *view.Engine
	page   view.Page
	log    logger.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(deps Dependencies, engine *view.Engine, page view.Page, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{deps: deps, engine: engine, page: page, log: log}
}

// HandleOpen handles GET / by mounting a new view session and redirecting
// to its page.
func (h *DashboardHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	id, err := h.deps.OpenView(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "failed to open view session", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, "/dashboard/"+id, http.StatusSeeOther)
}

// HandleView handles GET /dashboard/{id}.
func (h *DashboardHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	state, err := h.deps.View(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		h.render(w, r, view.PageNotFound, view.NotFound{Page: h.page})
		return
	}
	if err != nil {
		h.log.Error(ctx, "failed to load view session", logger.String("session", id), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := h.page
	page.SessionID = id
	m, err := view.Build(state, page)
	if err != nil {
		h.log.Error(ctx, "failed to build dashboard view", logger.String("session", id), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	h.render(w, r, view.PageDashboard, m)
	metrics.RecordViewRender(m.Status)
}

// HandleClose handles DELETE /dashboard/{id}.
func (h *DashboardHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.deps.CloseView(r.Context(), id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.engine.Render(w, name, data); err != nil {
		// Headers may already be sent; nothing left but to log.
		h.log.Error(r.Context(), "render failed", logger.Error(fmt.Errorf("%w: %s: %w", ErrRender, name, err)))
	}
}
