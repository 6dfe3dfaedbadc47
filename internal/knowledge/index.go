package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Embedder turns text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SearchOptions bounds a similarity search
type SearchOptions struct {
	MatchThreshold float64
	MatchCount     int
}

// DefaultSearchOptions matches at similarity 0.5 and returns at most five documents
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{MatchThreshold: 0.5, MatchCount: 5}
}

// SearchResult is a document with its similarity to the query
type SearchResult struct {
	Document
	Similarity float64 `json:"similarity"`
}

// Index stores per-user documents and searches them
type Index interface {
	Replace(ctx context.Context, userID string, docs []Document) error
	Search(ctx context.Context, query, userID string, opts SearchOptions) ([]SearchResult, error)
}

type entry struct {
	doc    Document
	vector []float32
}

// MemoryIndex is an in-process Index ranking by cosine similarity
type MemoryIndex struct {
	embedder Embedder

	mu   sync.RWMutex
	docs map[string][]entry
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex(embedder Embedder) *MemoryIndex {
	return &MemoryIndex{embedder: embedder, docs: map[string][]entry{}}
}

// Replace drops the user's documents and stores docs in their place.
// Nothing is changed if any embedding fails.
func (m *MemoryIndex) Replace(ctx context.Context, userID string, docs []Document) error {
	entries := make([]entry, 0, len(docs))
	for _, doc := range docs {
		vector, err := m.embedder.Embed(ctx, doc.Content)
		if err != nil {
			return fmt.Errorf("embed document %s: %w", doc.ID, err)
		}
		entries = append(entries, entry{doc: doc, vector: vector})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(entries) == 0 {
		delete(m.docs, userID)
		return nil
	}
	m.docs[userID] = entries
	return nil
}

// Search returns the user's documents whose similarity exceeds the
// threshold, most similar first
func (m *MemoryIndex) Search(ctx context.Context, query, userID string, opts SearchOptions) ([]SearchResult, error) {
	m.mu.RLock()
	entries := m.docs[userID]
	m.mu.RUnlock()

	if len(entries) == 0 || opts.MatchCount <= 0 {
		return nil, nil
	}

	queryVector, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results := lo.FilterMap(entries, func(e entry, _ int) (SearchResult, bool) {
		similarity := CosineSimilarity(queryVector, e.vector)
		return SearchResult{Document: e.doc, Similarity: similarity}, similarity > opts.MatchThreshold
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > opts.MatchCount {
		results = results[:opts.MatchCount]
	}
	return results, nil
}

// Count returns how many documents the user has
func (m *MemoryIndex) Count(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs[userID])
}

// CosineSimilarity returns 0 for mismatched or zero-length vectors
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
