// Package intake turns raw user input into calculator arguments.
package intake

import (
	"fmt"
	"strings"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ParseAmount reads a rupee amount typed by a user. Blank or unparsable input
// counts as zero. Grouping commas and a leading rupee sign are accepted.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ValidateForm rejects any field that parses to a negative or out-of-range amount
func ValidateForm(form domain.RegimeForm) error {
	for _, field := range form.Fields() {
		if err := calculation.CheckAmount(field.Key, ParseAmount(field.Value)); err != nil {
			return err
		}
	}
	return nil
}

// FormTotals aggregates the form into the calculator's two inputs. Income is
// the gross salary; every other field adds to deductions.
func FormTotals(form domain.RegimeForm) (income, deductions decimal.Decimal) {
	fields := form.Fields()
	income = ParseAmount(fields[0].Value)
	deductions = lo.Reduce(fields[1:], func(sum decimal.Decimal, f domain.FormField, _ int) decimal.Decimal {
		return sum.Add(ParseAmount(f.Value))
	}, decimal.Zero)
	return income, deductions
}

// ProfileTotals derives income and deductions from a stored profile.
// TDS is tax already paid and takes no part.
func ProfileTotals(p domain.Profile) (income, deductions decimal.Decimal) {
	income = domain.Amount(p.GrossSalary).Add(domain.Amount(p.IncomeFromFD))
	deductions = lo.Reduce([]*decimal.Decimal{
		p.Investments,
		p.HealthInsurance,
		p.EducationLoan,
		p.HomeLoanInterest,
		p.HRALTA,
	}, func(sum decimal.Decimal, amount *decimal.Decimal, _ int) decimal.Decimal {
		return sum.Add(domain.Amount(amount))
	}, decimal.Zero)
	return income, deductions
}

// ValidateProfile checks the fields the profile form requires
func ValidateProfile(p domain.Profile) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return &calculation.InvalidInputError{Field: "first_name", Reason: "is required"}
	}
	if strings.TrimSpace(p.LastName) == "" {
		return &calculation.InvalidInputError{Field: "last_name", Reason: "is required"}
	}

	amounts := []struct {
		field string
		value *decimal.Decimal
	}{
		{"gross_salary", p.GrossSalary},
		{"income_from_fd", p.IncomeFromFD},
		{"tds", p.TDS},
		{"investments", p.Investments},
		{"health_insurance", p.HealthInsurance},
		{"education_loan", p.EducationLoan},
		{"home_loan_interest", p.HomeLoanInterest},
		{"hra_lta", p.HRALTA},
	}
	for _, a := range amounts {
		if a.value == nil {
			continue
		}
		if err := calculation.CheckAmount(a.field, *a.value); err != nil {
			return err
		}
	}
	return nil
}

// CompareInput validates a form and returns its totals
func CompareInput(form domain.RegimeForm) (income, deductions decimal.Decimal, err error) {
	if err := ValidateForm(form); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("regime form: %w", err)
	}
	income, deductions = FormTotals(form)
	return income, deductions, nil
}
