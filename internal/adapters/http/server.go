// Package http serves a read-only inspection API over a composed ruleset.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/internal/metrics"
	"github.com/aretw0/ruleforge/internal/presentation/graph"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine provides the ruleset to inspect.
type Engine interface {
	Ruleset(ctx context.Context) (*domain.Ruleset, error)
}

// Server handles the inspection routes.
type Server struct {
	engine  Engine
	metrics *metrics.Metrics
	logger  *slog.Logger
	version string
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves m on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{engine: engine, logger: logging.NewNop(), version: "dev"}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/entities", func(r chi.Router) {
		r.Get("/", s.ListEntities)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetEntity)
			r.Get("/order", s.GetEntityOrder)
			r.Get("/graph", s.GetEntityGraph)
		})
	})
	r.Route("/weapons", func(r chi.Router) {
		r.Get("/", s.ListWeapons)
		r.Get("/{name}", s.GetWeapon)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "ruleforge-http",
		"version": s.version,
	})
}

// ListEntities handles GET /entities.
func (s *Server) ListEntities(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.ruleset(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, rs.EntityNames())
}

// GetEntity handles GET /entities/{name}.
func (s *Server) GetEntity(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entity(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, newEntityView(e))
}

// GetEntityOrder handles GET /entities/{name}/order. An unresolvable order
// is reported as 422 with the resolver's error.
func (s *Server) GetEntityOrder(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entity(w, r)
	if !ok {
		return
	}
	order, err := e.ConstructOrder()
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	types := make([]string, len(order))
	for i, c := range order {
		types[i] = c.Type()
	}
	s.writeJSON(w, http.StatusOK, types)
}

// GetEntityGraph handles GET /entities/{name}/graph with a Mermaid flowchart.
func (s *Server) GetEntityGraph(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entity(w, r)
	if !ok {
		return
	}

	overlay := graph.OverlayFor(e)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(graph.GenerateMermaid(e, overlay))); err != nil {
		s.logger.Error("Graph response write failed", "error", err)
	}
}

// ListWeapons handles GET /weapons.
func (s *Server) ListWeapons(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.ruleset(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, rs.WeaponNames())
}

// GetWeapon handles GET /weapons/{name}.
func (s *Server) GetWeapon(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.ruleset(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	weapon, found := rs.Weapon(name)
	if !found {
		s.writeError(w, http.StatusNotFound, &domain.LookupError{Kind: "weapon", Name: name})
		return
	}
	s.writeJSON(w, http.StatusOK, newWeaponView(weapon))
}

func (s *Server) ruleset(w http.ResponseWriter, r *http.Request) (*domain.Ruleset, bool) {
	rs, err := s.engine.Ruleset(r.Context())
	if err != nil {
		s.logger.Error("Ruleset unavailable", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return rs, true
}

func (s *Server) entity(w http.ResponseWriter, r *http.Request) (*domain.EntityDescriptor, bool) {
	rs, ok := s.ruleset(w, r)
	if !ok {
		return nil, false
	}
	name := chi.URLParam(r, "name")
	e, found := rs.Entity(name)
	if !found {
		s.writeError(w, http.StatusNotFound, &domain.LookupError{Kind: "entity", Name: name})
		return nil, false
	}
	return e, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
