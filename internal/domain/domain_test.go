package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegime(t *testing.T) {
	tests := []struct {
		in      string
		want    Regime
		wantErr bool
	}{
		{"old", RegimeOld, false},
		{" NEW ", RegimeNew, false},
		{"Old", RegimeOld, false},
		{"legacy", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegimeLabel(t *testing.T) {
	assert.Equal(t, "OLD REGIME", RegimeOld.Label())
	assert.Equal(t, "NEW REGIME", RegimeNew.Label())
	assert.False(t, Regime("x").Valid())
}

func TestProfileHelpers(t *testing.T) {
	salary := decimal.NewFromInt(1200000)
	zero := decimal.Zero
	p := Profile{FirstName: "Asha", LastName: "Rao", GrossSalary: &salary, TDS: &zero}

	assert.Equal(t, "Asha Rao", p.FullName())
	assert.True(t, Declared(p.GrossSalary))
	assert.False(t, Declared(p.TDS))
	assert.False(t, Declared(p.Investments))
	assert.True(t, Amount(p.Investments).IsZero())
	assert.True(t, Amount(p.GrossSalary).Equal(salary))
}

func TestRegimeFormRoundTripThroughFields(t *testing.T) {
	form := RegimeForm{GrossSalary: "1000000", ProvidentFund: "150000", SavingsInterest: "abc"}

	fields := form.Fields()
	require.Len(t, fields, 12)
	assert.Equal(t, "grossSalary", fields[0].Key)

	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = f.Value
	}
	assert.Equal(t, form, RegimeFormFromValues(values))
}
