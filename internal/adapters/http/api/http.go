// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/okian/cowin/internal/domain/dashboard"
	"github.com/okian/cowin/internal/domain/model"
	"github.com/okian/cowin/internal/view"
	"github.com/okian/cowin/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// OpenView mounts a new dashboard view session and returns its ID.
	OpenView(ctx context.Context) (string, error)
	// View returns the current fetch state of a session.
	View(ctx context.Context, id string) (dashboard.State, error)
	// CloseView unmounts a session.
	CloseView(ctx context.Context, id string) error

	// FetchVaccinationData returns freshly fetched, mapped data.
	FetchVaccinationData(ctx context.Context) (model.VaccinationData, error)
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	dashboardHandler   *DashboardHandler
	vaccinationHandler *VaccinationHandler

	rateLimit int
	log       logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, engine *view.Engine, opts ...Option) *Server {
	s := &Server{rateLimit: 60}
	cfg := serverConfig{}
	for _, opt := range opts {
		opt(s, &cfg)
	}
	if s.log == nil {
		s.log = logger.Named("http")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.dashboardHandler = NewDashboardHandler(deps, engine, cfg.page, s.log)
	s.vaccinationHandler = NewVaccinationHandler(deps, s.log)
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Method(http.MethodGet, "/metrics", s.healthHandler.MetricsHandler())
	r.Get("/stats", s.statsHandler.HandleStats)

	r.Get("/", s.dashboardHandler.HandleOpen)
	r.Get("/dashboard/{id}", s.dashboardHandler.HandleView)
	r.Delete("/dashboard/{id}", s.dashboardHandler.HandleClose)

	limiter := httprate.Limit(s.rateLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate_limited", nil)
		}),
	)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/api/vaccination", s.vaccinationHandler.HandleGet)
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
