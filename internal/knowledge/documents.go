// Package knowledge turns a user's financial profile into short retrievable
// documents and ranks them against chat queries.
package knowledge

import (
	"fmt"

	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/money"
	"github.com/shopspring/decimal"
)

// Document is one retrievable fact about a user
type Document struct {
	ID       string         `json:"id"`
	UserID   string         `json:"userId"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Document types stored in metadata["type"]
const (
	TypePersonalInfo = "personal_info"
	TypeSalary       = "salary"
	TypeOtherIncome  = "other_income"
	TypeDeductions   = "deductions"
	TypeExemptions   = "exemptions"
	TypeTaxPaid      = "tax_paid"
	TypeTotalIncome  = "total_income"
)

type amountTemplate struct {
	value   *decimal.Decimal
	typ     string
	subtype string
	format  string // receives name and formatted amount
}

// BuildDocuments creates the documents describing a profile. Amounts the user
// did not declare (nil or zero) produce no document; the name and total
// income documents are always present.
func BuildDocuments(userID string, p domain.Profile) []Document {
	name := p.FirstName + " " + p.LastName
	docs := []Document{{
		Content: fmt.Sprintf("User's name is %s.", name),
		Metadata: map[string]any{
			"type":       TypePersonalInfo,
			"first_name": p.FirstName,
			"last_name":  p.LastName,
		},
	}}

	if domain.Declared(p.GrossSalary) {
		docs = append(docs, Document{
			Content: fmt.Sprintf("%s has a gross salary of %s annually.", name, money.Rupees(*p.GrossSalary)),
			Metadata: map[string]any{
				"type":         TypeSalary,
				"gross_salary": *p.GrossSalary,
			},
		})
	}

	templates := []amountTemplate{
		{p.IncomeFromFD, TypeOtherIncome, "fd", "%s has income from Fixed Deposits (FD) amounting to %s annually."},
		{p.Investments, TypeDeductions, "investments", "%s has declared investments of %s annually (likely under section 80C)."},
		{p.HealthInsurance, TypeDeductions, "health_insurance", "%s pays %s annually for health insurance premiums (Section 80D)."},
		{p.EducationLoan, TypeDeductions, "education_loan", "%s has an education loan interest payment of %s annually (Section 80E)."},
		{p.HomeLoanInterest, TypeDeductions, "home_loan_interest", "%s pays %s annually in home loan interest (Section 24b)."},
		{p.HRALTA, TypeExemptions, "hra_lta", "%s has HRA/LTA exemptions totaling %s annually."},
		{p.TDS, TypeTaxPaid, "tds", "%s has already paid %s in TDS (Tax Deducted at Source)."},
	}
	for _, tpl := range templates {
		if !domain.Declared(tpl.value) {
			continue
		}
		docs = append(docs, Document{
			Content: fmt.Sprintf(tpl.format, name, money.Rupees(*tpl.value)),
			Metadata: map[string]any{
				"type":    tpl.typ,
				"subtype": tpl.subtype,
				"amount":  *tpl.value,
			},
		})
	}

	total := domain.Amount(p.GrossSalary).Add(domain.Amount(p.IncomeFromFD))
	docs = append(docs, Document{
		Content: fmt.Sprintf("%s's total gross income (Salary + FD) is approximately %s.", name, money.Rupees(total)),
		Metadata: map[string]any{
			"type":  TypeTotalIncome,
			"total": total,
		},
	})

	for i := range docs {
		docs[i].ID = fmt.Sprintf("%s-%d", userID, i+1)
		docs[i].UserID = userID
	}
	return docs
}
