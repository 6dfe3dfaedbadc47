package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/intake"
	"github.com/finseva/finseva/internal/money"
)

// UpdateUserContext rebuilds the user's documents from their profile and
// returns how many were stored
func UpdateUserContext(ctx context.Context, index Index, userID string, p domain.Profile) (int, error) {
	if err := intake.ValidateProfile(p); err != nil {
		return 0, err
	}
	docs := BuildDocuments(userID, p)
	if err := index.Replace(ctx, userID, docs); err != nil {
		return 0, fmt.Errorf("update context for %s: %w", userID, err)
	}
	return len(docs), nil
}

// BuildPromptContext renders retrieved documents and the current profile as
// the block appended to the user's chat message. Either part may be empty.
func BuildPromptContext(results []SearchResult, p *domain.Profile) string {
	var sb strings.Builder

	if len(results) > 0 {
		sb.WriteString("\n\n**User Financial Context (Retrieved from Knowledge Base):**\n")
		for i, r := range results {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Content)
		}
	}

	if p != nil {
		sb.WriteString("\n\n**Current User Profile:**\n")
		fmt.Fprintf(&sb, "- Name: %s %s\n", p.FirstName, p.LastName)
		if domain.Declared(p.GrossSalary) {
			fmt.Fprintf(&sb, "- Gross Salary: %s\n", money.Rupees(*p.GrossSalary))
		}
		if domain.Declared(p.IncomeFromFD) {
			fmt.Fprintf(&sb, "- Income from Other Sources: %s\n", money.Rupees(*p.IncomeFromFD))
		}
	}

	return sb.String()
}
