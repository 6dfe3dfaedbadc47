package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultSystemInstruction = "You are FinSeva, an assistant for Indian personal income tax. " +
	"Answer using the user's financial context when it is provided and compare the old and new regimes when relevant. " +
	"Amounts are in Indian rupees."

// GenAIBackend replies through the Gemini API
type GenAIBackend struct {
	client *genai.Client
	model  string
	system string
}

// NewGenAIBackend creates a Gemini chat backend
func NewGenAIBackend(ctx context.Context, apiKey, model string) (*GenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIBackend{client: client, model: model, system: defaultSystemInstruction}, nil
}

// Reply sends the conversation and returns the model's answer
func (b *GenAIBackend) Reply(ctx context.Context, messages []Message) (Message, error) {
	contents, system := toContents(messages)
	if len(contents) == 0 {
		return Message{}, ErrNoMessages
	}

	instruction := b.system
	if system != "" {
		instruction += "\n\n" + system
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	})
	if err != nil {
		return Message{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	return Message{Role: RoleAssistant, Content: resp.Text()}, nil
}

// toContents maps chat turns to GenAI contents. System messages are joined
// and returned separately.
func toContents(messages []Message) ([]*genai.Content, string) {
	var contents []*genai.Content
	var system []string
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return contents, strings.Join(system, "\n")
}

// GenAIEmbedder generates document and query embeddings through the Gemini API
type GenAIEmbedder struct {
	client *genai.Client
	model  string
}

// NewGenAIEmbedder creates a Gemini embedder
func NewGenAIEmbedder(ctx context.Context, apiKey, model string) (*GenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIEmbedder{client: client, model: model}, nil
}

// Embed generates an embedding for a single text
func (e *GenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := e.client.Models.EmbedContent(ctx,
		e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{
			TaskType: "SEMANTIC_SIMILARITY",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("GenAI embed failed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	return result.Embeddings[0].Values, nil
}
