package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/finseva/finseva/internal/config"
	"github.com/finseva/finseva/internal/logging"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) checkEnv(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Environment check",
		"variables": config.EnvStatus(s.deps.Getenv),
	})
}

func (s *Server) taxNews(w http.ResponseWriter, r *http.Request) {
	if s.deps.News == nil {
		writeError(r.Context(), w, errNewsUnavailable)
		return
	}
	items, err := s.deps.News.Today(r.Context(), s.deps.Now())
	if err != nil {
		logging.FromContext(r.Context()).Warn("tax news fetch failed", zap.Error(err))
		writeError(r.Context(), w, errNewsUnavailable)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	writeJSON(w, http.StatusOK, items)
}
