package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/knowledge"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type recordingBackend struct {
	received []Message
	err      error
}

func (b *recordingBackend) Reply(_ context.Context, messages []Message) (Message, error) {
	b.received = messages
	if b.err != nil {
		return Message{}, b.err
	}
	return Message{Role: RoleAssistant, Content: "Choose the old regime."}, nil
}

type stubIndex struct {
	results []knowledge.SearchResult
	err     error
	query   string
	userID  string
}

func (s *stubIndex) Replace(context.Context, string, []knowledge.Document) error { return nil }

func (s *stubIndex) Search(_ context.Context, query, userID string, _ knowledge.SearchOptions) ([]knowledge.SearchResult, error) {
	s.query, s.userID = query, userID
	return s.results, s.err
}

func profile() *domain.Profile {
	salary := decimal.NewFromInt(1000000)
	return &domain.Profile{FirstName: "Asha", LastName: "Rao", GrossSalary: &salary}
}

func TestChat_AugmentsLastUserMessage(t *testing.T) {
	backend := &recordingBackend{}
	index := &stubIndex{results: []knowledge.SearchResult{
		{Document: knowledge.Document{Content: "Asha Rao has a gross salary of ₹10,00,000 annually."}, Similarity: 0.9},
	}}
	svc := NewService(backend, index, knowledge.DefaultSearchOptions(), nil)

	reply, err := svc.Chat(context.Background(), "user-1", []Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "Hi!"},
		{Role: "user", Content: "Which regime is better for me?"},
	}, profile())
	require.NoError(t, err)

	assert.Equal(t, "Choose the old regime.", reply.Content)
	assert.Equal(t, "Which regime is better for me?", index.query)
	assert.Equal(t, "user-1", index.userID)

	require.Len(t, backend.received, 3)
	assert.Equal(t, "hello", backend.received[0].Content)
	last := backend.received[2].Content
	assert.True(t, strings.HasPrefix(last, "Which regime is better for me?\n\n**User Financial Context"))
	assert.Contains(t, last, "1. Asha Rao has a gross salary of ₹10,00,000 annually.\n")
	assert.Contains(t, last, "- Name: Asha Rao\n- Gross Salary: ₹10,00,000\n")
}

func TestChat_SanitisesUserContent(t *testing.T) {
	backend := &recordingBackend{}
	svc := NewService(backend, nil, knowledge.DefaultSearchOptions(), nil)

	_, err := svc.Chat(context.Background(), "", []Message{
		{Role: "User", Content: `<script>alert(1)</script>Is <b>80C</b> worth it & why?`},
	}, nil)
	require.NoError(t, err)

	require.Len(t, backend.received, 1)
	assert.Equal(t, RoleUser, backend.received[0].Role)
	assert.Equal(t, "Is 80C worth it & why?", backend.received[0].Content)
}

func TestChat_SearchFailureIsIgnored(t *testing.T) {
	backend := &recordingBackend{}
	index := &stubIndex{err: errors.New("index offline")}
	svc := NewService(backend, index, knowledge.DefaultSearchOptions(), nil)

	_, err := svc.Chat(context.Background(), "user-1", []Message{{Role: "user", Content: "tax?"}}, profile())
	require.NoError(t, err)

	last := backend.received[0].Content
	assert.NotContains(t, last, "Knowledge Base")
	assert.Contains(t, last, "**Current User Profile:**")
}

func TestChat_LastMessageNotFromUser(t *testing.T) {
	backend := &recordingBackend{}
	index := &stubIndex{}
	svc := NewService(backend, index, knowledge.DefaultSearchOptions(), nil)

	_, err := svc.Chat(context.Background(), "user-1", []Message{{Role: "assistant", Content: "<b>ok</b>"}}, profile())
	require.NoError(t, err)

	assert.Equal(t, "<b>ok</b>", backend.received[0].Content)
	assert.Empty(t, index.query)
}

func TestChat_Errors(t *testing.T) {
	svc := NewService(&recordingBackend{}, nil, knowledge.DefaultSearchOptions(), nil)
	_, err := svc.Chat(context.Background(), "user-1", nil, nil)
	assert.ErrorIs(t, err, ErrNoMessages)

	failing := NewService(&recordingBackend{err: errors.New("quota exceeded")}, nil, knowledge.DefaultSearchOptions(), nil)
	_, err = failing.Chat(context.Background(), "user-1", []Message{{Role: "user", Content: "hi"}}, nil)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestToContents(t *testing.T) {
	contents, system := toContents([]Message{
		{Role: RoleSystem, Content: "Be brief."},
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "Hi!"},
	})

	assert.Equal(t, "Be brief.", system)
	require.Len(t, contents, 2)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, "hello", contents[0].Parts[0].Text)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
}

func TestNewGenAI_RequiresKey(t *testing.T) {
	_, err := NewGenAIBackend(context.Background(), "", "")
	assert.Error(t, err)

	_, err = NewGenAIEmbedder(context.Background(), "", "")
	assert.Error(t, err)
}
