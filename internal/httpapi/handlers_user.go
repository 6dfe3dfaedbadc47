package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/finseva/finseva/internal/assistant"
	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/identity"
	"github.com/finseva/finseva/internal/intake"
	"github.com/finseva/finseva/internal/knowledge"
	"github.com/finseva/finseva/internal/logging"
	"github.com/finseva/finseva/internal/repository"
)

type chatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

func userID(r *http.Request) string {
	id, _ := identity.FromContext(r.Context())
	return id.UserID
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Profiles.Get(r.Context(), userID(r))
	if err != nil {
		writeErr(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// putProfile saves the profile and refreshes the user's documents. A failed
// refresh is logged; the profile is still saved.
func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if !decode(w, r, &profile) {
		return
	}
	if err := intake.ValidateProfile(profile); err != nil {
		writeErr(r.Context(), w, err)
		return
	}

	ctx := r.Context()
	uid := userID(r)
	if err := s.deps.Profiles.Upsert(ctx, uid, profile); err != nil {
		writeErr(ctx, w, err)
		return
	}

	if s.deps.Index != nil {
		if _, err := knowledge.UpdateUserContext(ctx, s.deps.Index, uid, profile); err != nil {
			logging.FromContext(ctx).Warn("refresh documents failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) compareProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Profiles.Get(r.Context(), userID(r))
	if err != nil {
		writeErr(r.Context(), w, err)
		return
	}
	// stored profiles pass the same amount checks as incoming ones
	if err := intake.ValidateProfile(profile); err != nil {
		writeErr(r.Context(), w, err)
		return
	}
	income, deductions := intake.ProfileTotals(profile)
	writeJSON(w, http.StatusOK, s.report(income, deductions))
}

func (s *Server) rebuildContext(w http.ResponseWriter, r *http.Request) {
	if s.deps.Index == nil {
		writeError(r.Context(), w, errKnowledgeDisabled)
		return
	}

	ctx := r.Context()
	uid := userID(r)
	profile, err := s.deps.Profiles.Get(ctx, uid)
	if err != nil {
		writeErr(ctx, w, err)
		return
	}

	count, err := knowledge.UpdateUserContext(ctx, s.deps.Index, uid, profile)
	if err != nil {
		writeErr(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "documents": count})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Assistant == nil {
		writeError(r.Context(), w, errAssistantDisabled)
		return
	}

	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		writeError(r.Context(), w, newError("invalid_input", "messages are required", http.StatusBadRequest))
		return
	}

	ctx := r.Context()
	uid := userID(r)

	var profile *domain.Profile
	stored, err := s.deps.Profiles.Get(ctx, uid)
	switch {
	case err == nil:
		profile = &stored
	case !errors.Is(err, repository.ErrNotFound):
		logging.FromContext(ctx).Warn("load profile for chat failed", zap.Error(err))
	}

	reply, err := s.deps.Assistant.Chat(ctx, uid, req.Messages, profile)
	if err != nil {
		logging.FromContext(ctx).Error("assistant reply failed", zap.Error(err))
		writeError(ctx, w, newError("assistant_failed", "the assistant could not answer", http.StatusBadGateway))
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
