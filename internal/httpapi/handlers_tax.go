package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/compare"
	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/intake"
	"github.com/finseva/finseva/internal/output"
)

type calculateRequest struct {
	Income     decimal.Decimal `json:"income"`
	Deductions decimal.Decimal `json:"deductions"`
	Regime     string          `json:"regime"`
}

type compareRequest struct {
	Income     decimal.Decimal `json:"income"`
	Deductions decimal.Decimal `json:"deductions"`
}

// decode reads a JSON body into v, writing a 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(r.Context(), w, errInvalidJSON)
		return false
	}
	return true
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if !decode(w, r, &req) {
		return
	}

	input := domain.TaxInput{Income: req.Income, Deductions: req.Deductions, Regime: domain.Regime(req.Regime)}
	if regime, err := domain.ParseRegime(req.Regime); err == nil {
		input.Regime = regime
	}
	if err := calculation.ValidateInput(input); err != nil {
		writeErr(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, output.NewCalculation(s.deps.Comparator.Calculator, input))
}

func (s *Server) compareTotals(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validateTotals(req.Income, req.Deductions); err != nil {
		writeErr(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.report(req.Income, req.Deductions))
}

func (s *Server) compareForm(w http.ResponseWriter, r *http.Request) {
	var form domain.RegimeForm
	if !decode(w, r, &form) {
		return
	}
	income, deductions, err := intake.CompareInput(form)
	if err != nil {
		writeErr(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.report(income, deductions))
}

func (s *Server) report(income, deductions decimal.Decimal) *compare.Report {
	return s.deps.Comparator.Report(income, deductions)
}

func validateTotals(income, deductions decimal.Decimal) error {
	if err := calculation.CheckAmount("income", income); err != nil {
		return err
	}
	return calculation.CheckAmount("deductions", deductions)
}
