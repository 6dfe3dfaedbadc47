package domain

import (
	"github.com/shopspring/decimal"
)

// Profile is the financial data a user declares in the intake form.
// Optional amounts are nil when the user answered "no" to the question.
type Profile struct {
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	GrossSalary      *decimal.Decimal `json:"gross_salary,omitempty"`
	IncomeFromFD     *decimal.Decimal `json:"income_from_fd,omitempty"`
	TDS              *decimal.Decimal `json:"tds,omitempty"`
	Investments      *decimal.Decimal `json:"investments,omitempty"`
	HealthInsurance  *decimal.Decimal `json:"health_insurance,omitempty"`
	EducationLoan    *decimal.Decimal `json:"education_loan,omitempty"`
	HomeLoanInterest *decimal.Decimal `json:"home_loan_interest,omitempty"`
	HRALTA           *decimal.Decimal `json:"hra_lta,omitempty"`
}

// FullName joins first and last name
func (p Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Amount dereferences an optional amount, treating nil as zero
func Amount(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Declared reports whether an optional amount was supplied and is non-zero
func Declared(d *decimal.Decimal) bool {
	return d != nil && !d.IsZero()
}

// RegimeForm holds the raw compare-page inputs exactly as the user typed them
type RegimeForm struct {
	GrossSalary         string `json:"grossSalary"`
	ExemptAllowances    string `json:"exemptAllowances"`
	ReliefIncome        string `json:"reliefIncome"`
	Deductions16        string `json:"deductions16"`
	DonationsPaid       string `json:"donationsPaid"`
	ScientificResearch  string `json:"scientificResearch"`
	Deduction80GG       string `json:"deduction80GG"`
	ProvidentFund       string `json:"providentFund"`
	Deduction80CCD2     string `json:"deduction80CCD2"`
	MedicalInsurance    string `json:"medicalInsurance"`
	HigherEducationLoan string `json:"higherEducationLoan"`
	SavingsInterest     string `json:"savingsInterest"`
}

// FormField names a single RegimeForm input
type FormField struct {
	Key   string
	Label string
	Value string
}

// Fields lists the form inputs in display order. The first entry is the
// income field; the rest are aggregated as deductions.
func (f RegimeForm) Fields() []FormField {
	return []FormField{
		{Key: "grossSalary", Label: "Gross Salary", Value: f.GrossSalary},
		{Key: "exemptAllowances", Label: "Exempt Allowances", Value: f.ExemptAllowances},
		{Key: "reliefIncome", Label: "Relief u/s 89A", Value: f.ReliefIncome},
		{Key: "deductions16", Label: "Deductions u/s 16 (Std Deduction)", Value: f.Deductions16},
		{Key: "donationsPaid", Label: "Donations Paid", Value: f.DonationsPaid},
		{Key: "scientificResearch", Label: "Scientific Research", Value: f.ScientificResearch},
		{Key: "deduction80GG", Label: "Deduction u/s 80GG", Value: f.Deduction80GG},
		{Key: "providentFund", Label: "Provident Fund", Value: f.ProvidentFund},
		{Key: "deduction80CCD2", Label: "Deduction u/s 80CCD(2)", Value: f.Deduction80CCD2},
		{Key: "medicalInsurance", Label: "Medical Insurance Premium", Value: f.MedicalInsurance},
		{Key: "higherEducationLoan", Label: "Higher Education Loan Interest", Value: f.HigherEducationLoan},
		{Key: "savingsInterest", Label: "Savings Interest", Value: f.SavingsInterest},
	}
}

// RegimeFormFromValues rebuilds a form from values in Fields() order
func RegimeFormFromValues(values []string) RegimeForm {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return RegimeForm{
		GrossSalary:         get(0),
		ExemptAllowances:    get(1),
		ReliefIncome:        get(2),
		Deductions16:        get(3),
		DonationsPaid:       get(4),
		ScientificResearch:  get(5),
		Deduction80GG:       get(6),
		ProvidentFund:       get(7),
		Deduction80CCD2:     get(8),
		MedicalInsurance:    get(9),
		HigherEducationLoan: get(10),
		SavingsInterest:     get(11),
	}
}
