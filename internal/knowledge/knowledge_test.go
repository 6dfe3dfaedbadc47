package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finseva/finseva/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder scores text by the presence of a few fixed words
type keywordEmbedder struct {
	words []string
	fail  bool
	calls int
}

func newKeywordEmbedder() *keywordEmbedder {
	return &keywordEmbedder{words: []string{"salary", "health", "loan", "tds", "name"}}
}

func (k *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	k.calls++
	if k.fail {
		return nil, errors.New("embedding backend down")
	}
	text = strings.ToLower(text)
	vector := make([]float32, len(k.words))
	for i, w := range k.words {
		vector[i] = float32(strings.Count(text, w))
	}
	return vector, nil
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func fullProfile() domain.Profile {
	return domain.Profile{
		FirstName:        "Asha",
		LastName:         "Rao",
		GrossSalary:      amount(1234567),
		IncomeFromFD:     amount(50000),
		TDS:              amount(90000),
		Investments:      amount(150000),
		HealthInsurance:  amount(25000),
		EducationLoan:    amount(40000),
		HomeLoanInterest: amount(200000),
		HRALTA:           amount(60000),
	}
}

func TestBuildDocuments_FullProfile(t *testing.T) {
	docs := BuildDocuments("user-1", fullProfile())

	require.Len(t, docs, 10)
	assert.Equal(t, "User's name is Asha Rao.", docs[0].Content)
	assert.Equal(t, TypePersonalInfo, docs[0].Metadata["type"])
	assert.Equal(t, "Asha Rao has a gross salary of ₹12,34,567 annually.", docs[1].Content)
	assert.Equal(t, "Asha Rao has income from Fixed Deposits (FD) amounting to ₹50,000 annually.", docs[2].Content)
	assert.Equal(t, "Asha Rao has declared investments of ₹1,50,000 annually (likely under section 80C).", docs[3].Content)
	assert.Equal(t, "Asha Rao pays ₹2,00,000 annually in home loan interest (Section 24b).", docs[6].Content)
	assert.Equal(t, "Asha Rao has already paid ₹90,000 in TDS (Tax Deducted at Source).", docs[8].Content)
	assert.Equal(t, "Asha Rao's total gross income (Salary + FD) is approximately ₹12,84,567.", docs[9].Content)

	assert.Equal(t, "health_insurance", docs[4].Metadata["subtype"])
	assert.True(t, docs[4].Metadata["amount"].(decimal.Decimal).Equal(decimal.NewFromInt(25000)))

	for i, doc := range docs {
		assert.Equal(t, "user-1", doc.UserID)
		assert.NotEmpty(t, doc.ID, "doc %d", i)
	}
}

func TestBuildDocuments_SkipsUndeclaredAmounts(t *testing.T) {
	p := domain.Profile{FirstName: "Ravi", LastName: "Iyer", GrossSalary: amount(800000), TDS: amount(0)}

	docs := BuildDocuments("user-2", p)

	require.Len(t, docs, 3)
	assert.Equal(t, TypePersonalInfo, docs[0].Metadata["type"])
	assert.Equal(t, TypeSalary, docs[1].Metadata["type"])
	assert.Equal(t, TypeTotalIncome, docs[2].Metadata["type"])
	assert.Contains(t, docs[2].Content, "₹8,00,000")
}

func TestMemoryIndex_SearchRanksAndFilters(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex(newKeywordEmbedder())

	require.NoError(t, index.Replace(ctx, "user-1", BuildDocuments("user-1", fullProfile())))
	require.NoError(t, index.Replace(ctx, "user-2", BuildDocuments("user-2", domain.Profile{FirstName: "Ravi", LastName: "Iyer"})))

	results, err := index.Search(ctx, "what about my health insurance?", "user-1", DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Content, "health insurance premiums")
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)

	results, err = index.Search(ctx, "loan", "user-1", SearchOptions{MatchThreshold: 0.5, MatchCount: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, TypeDeductions, results[0].Metadata["type"])

	results, err = index.Search(ctx, "salary", "user-1", SearchOptions{MatchThreshold: 0.99, MatchCount: 5})
	require.NoError(t, err)
	for _, r := range results {
		assert.Greater(t, r.Similarity, 0.99)
		assert.Equal(t, "user-1", r.UserID)
	}
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestMemoryIndex_UnknownUser(t *testing.T) {
	embedder := newKeywordEmbedder()
	index := NewMemoryIndex(embedder)

	results, err := index.Search(context.Background(), "salary", "nobody", DefaultSearchOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, embedder.calls)
}

func TestMemoryIndex_ReplaceFailureKeepsExisting(t *testing.T) {
	ctx := context.Background()
	embedder := newKeywordEmbedder()
	index := NewMemoryIndex(embedder)
	require.NoError(t, index.Replace(ctx, "user-1", BuildDocuments("user-1", fullProfile())))

	embedder.fail = true
	err := index.Replace(ctx, "user-1", BuildDocuments("user-1", domain.Profile{FirstName: "A", LastName: "B"}))

	assert.ErrorContains(t, err, "embedding backend down")
	assert.Equal(t, 10, index.Count("user-1"))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}

func TestUpdateUserContext(t *testing.T) {
	ctx := context.Background()
	index := NewMemoryIndex(newKeywordEmbedder())

	n, err := UpdateUserContext(ctx, index, "user-1", fullProfile())
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, 10, index.Count("user-1"))

	n, err = UpdateUserContext(ctx, index, "user-1", domain.Profile{FirstName: "Asha", LastName: "Rao"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, index.Count("user-1"))

	_, err = UpdateUserContext(ctx, index, "user-1", domain.Profile{FirstName: "Asha"})
	assert.Error(t, err)
	assert.Equal(t, 2, index.Count("user-1"))
}

func TestBuildPromptContext(t *testing.T) {
	results := []SearchResult{
		{Document: Document{Content: "Asha Rao pays ₹25,000 annually for health insurance premiums (Section 80D)."}},
		{Document: Document{Content: "User's name is Asha Rao."}},
	}
	p := fullProfile()

	got := BuildPromptContext(results, &p)

	want := "\n\n**User Financial Context (Retrieved from Knowledge Base):**\n" +
		"1. Asha Rao pays ₹25,000 annually for health insurance premiums (Section 80D).\n" +
		"2. User's name is Asha Rao.\n" +
		"\n\n**Current User Profile:**\n" +
		"- Name: Asha Rao\n" +
		"- Gross Salary: ₹12,34,567\n" +
		"- Income from Other Sources: ₹50,000\n"
	assert.Equal(t, want, got)
}

func TestBuildPromptContext_Empty(t *testing.T) {
	assert.Equal(t, "", BuildPromptContext(nil, nil))

	p := domain.Profile{FirstName: "Ravi", LastName: "Iyer"}
	assert.Equal(t, "\n\n**Current User Profile:**\n- Name: Ravi Iyer\n", BuildPromptContext(nil, &p))
}
