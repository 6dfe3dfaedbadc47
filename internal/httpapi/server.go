// Package httpapi exposes the tax calculator, profile store and assistant over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/finseva/finseva/internal/assistant"
	"github.com/finseva/finseva/internal/compare"
	"github.com/finseva/finseva/internal/identity"
	"github.com/finseva/finseva/internal/knowledge"
	"github.com/finseva/finseva/internal/news"
	"github.com/finseva/finseva/internal/repository"
)

const maxBodyBytes = 1 << 20

// NewsSource returns today's headlines
type NewsSource interface {
	Today(ctx context.Context, now time.Time) ([]news.Item, error)
}

// Deps are the services behind the API. Assistant, Index and News are
// optional; their routes answer 503 when unset.
type Deps struct {
	Comparator *compare.RegimeComparator
	Profiles   repository.ProfileStore
	Verifier   *identity.Verifier
	Index      knowledge.Index
	Assistant  *assistant.Service
	News       NewsSource
	Logger     *zap.Logger
	Getenv     func(string) string
	Now        func() time.Time
}

// Server holds the handlers' dependencies
type Server struct {
	deps Deps
}

// NewServer fills in defaults for missing dependencies
func NewServer(deps Deps) *Server {
	if deps.Comparator == nil {
		deps.Comparator = compare.NewRegimeComparator(nil)
	}
	if deps.Profiles == nil {
		deps.Profiles = repository.NewProfileStoreMemory()
	}
	if deps.Verifier == nil {
		deps.Verifier = identity.NewVerifier("")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Server{deps: deps}
}

// Router builds the chi router with all routes mounted
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.deps.Logger))
	r.Use(recoverer)

	r.Get("/healthz", s.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/check-env", s.checkEnv)
		r.Get("/tax-news", s.taxNews)

		r.Post("/tax/calculate", s.calculate)
		r.Post("/tax/compare", s.compareTotals)
		r.Post("/tax/compare/form", s.compareForm)

		r.Group(func(r chi.Router) {
			r.Use(identity.RequireUser(s.deps.Verifier))
			r.Get("/me/profile", s.getProfile)
			r.Put("/me/profile", s.putProfile)
			r.Get("/me/compare", s.compareProfile)
			r.Post("/me/context", s.rebuildContext)
			r.Post("/me/chat", s.chat)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, newError("not_found", "route not found", http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, newError("method_not_allowed", "method not allowed", http.StatusMethodNotAllowed))
	})

	return r
}
