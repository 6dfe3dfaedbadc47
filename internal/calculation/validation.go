package calculation

import (
	"errors"
	"fmt"

	"github.com/finseva/finseva/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is matched by every InvalidInputError
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError names the offending field and its value
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s = %s (%s)", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) succeed
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NegativeAmountError reports a negative monetary field
func NegativeAmountError(field string, value decimal.Decimal) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value.String(), Reason: "must be non-negative"}
}

// MaxAmount is the largest rupee amount accepted from any caller
var MaxAmount = decimal.New(1, 15)

// maxAmountExponent bounds the decimal exponent before any arithmetic runs.
// Rescaling a value like 1e20000000 allocates a twenty-million digit integer.
const maxAmountExponent = 18

// maxCoefficientBits caps the unscaled value at roughly 34 significant digits
const maxCoefficientBits = 112

// CheckAmount rejects negative amounts and amounts outside [0, MaxAmount].
// The exponent is inspected first so oversized input never reaches a
// comparison that would rescale it.
func CheckAmount(field string, value decimal.Decimal) error {
	exp := value.Exponent()
	if exp > maxAmountExponent || exp < -maxAmountExponent || value.Coefficient().BitLen() > maxCoefficientBits {
		return &InvalidInputError{Field: field, Value: "out of range", Reason: "must be at most " + MaxAmount.String()}
	}
	if value.IsNegative() {
		return NegativeAmountError(field, value)
	}
	if value.GreaterThan(MaxAmount) {
		return &InvalidInputError{Field: field, Value: value.String(), Reason: "must be at most " + MaxAmount.String()}
	}
	return nil
}

// ValidateInput rejects inputs Calculate would accept but callers should not send
func ValidateInput(input domain.TaxInput) error {
	if err := CheckAmount("income", input.Income); err != nil {
		return err
	}
	if err := CheckAmount("deductions", input.Deductions); err != nil {
		return err
	}
	if !input.Regime.Valid() {
		return &InvalidInputError{Field: "regime", Value: string(input.Regime), Reason: "must be old or new"}
	}
	return nil
}
