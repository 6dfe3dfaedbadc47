// Package assistant augments chat messages with the user's financial
// context and hands them to a language model backend.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/knowledge"
	"github.com/finseva/finseva/internal/logging"
	"github.com/microcosm-cc/bluemonday"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ErrNoMessages is returned for an empty conversation
var ErrNoMessages = errors.New("assistant: no messages")

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend produces the assistant's reply to a conversation
type Backend interface {
	Reply(ctx context.Context, messages []Message) (Message, error)
}

// Service runs retrieval-augmented chat
type Service struct {
	backend Backend
	index   knowledge.Index
	options knowledge.SearchOptions
	policy  *bluemonday.Policy
	logger  logging.Logger
}

// NewService creates a chat service. index may be nil, in which case only
// the profile block is added to the prompt.
func NewService(backend Backend, index knowledge.Index, options knowledge.SearchOptions, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		backend: backend,
		index:   index,
		options: options,
		policy:  bluemonday.StrictPolicy(),
		logger:  logger,
	}
}

// Chat augments the last user message and returns the backend's reply
func (s *Service) Chat(ctx context.Context, userID string, messages []Message, profile *domain.Profile) (Message, error) {
	augmented, err := s.Augment(ctx, userID, messages, profile)
	if err != nil {
		return Message{}, err
	}

	reply, err := s.backend.Reply(ctx, augmented)
	if err != nil {
		return Message{}, fmt.Errorf("assistant reply: %w", err)
	}
	return reply, nil
}

// Augment sanitises user content and appends the retrieved documents and
// profile summary to the final user message. Retrieval failures are logged
// and the conversation continues without them.
func (s *Service) Augment(ctx context.Context, userID string, messages []Message, profile *domain.Profile) ([]Message, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = Message{Role: strings.ToLower(strings.TrimSpace(m.Role)), Content: m.Content}
		if out[i].Role == RoleUser {
			out[i].Content = s.sanitize(m.Content)
		}
	}

	last := &out[len(out)-1]
	if last.Role != RoleUser {
		return out, nil
	}

	var results []knowledge.SearchResult
	if s.index != nil && userID != "" {
		found, err := s.index.Search(ctx, last.Content, userID, s.options)
		if err != nil {
			s.logger.Warnf("document search for %s failed: %v", userID, err)
		} else {
			s.logger.Debugf("found %d relevant documents for %s", len(found), userID)
			results = found
		}
	}

	last.Content += knowledge.BuildPromptContext(results, profile)
	return out, nil
}

func (s *Service) sanitize(content string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(content)))
}
