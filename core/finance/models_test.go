package finance

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/tests"
)

func Test_parseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: `450.5`, want: "450.5"},
		{raw: `"120"`, want: "120"},
		{raw: `" 12.30 "`, want: "12.3"},
		{raw: `0`, want: "0"},
		{raw: `"12.300"`, want: "12.3"},
		{raw: `999999999999.99`, want: "999999999999.99"},
		{raw: `0.005`, wantErr: true},
		{raw: `1000000000000`, wantErr: true},
		{raw: `"1e12"`, wantErr: true},
		{raw: `-1`, wantErr: true},
		{raw: `"abc"`, wantErr: true},
		{raw: `null`, wantErr: true},
		{raw: ``, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAmount(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s", got)
		})
	}
}

func TestMonthBudget_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	t.Run("invalid amounts reported per entry", func(t *testing.T) {
		mb := MonthBudget{Entries: []EntryInput{
			{Category: "Rent", Amount: json.RawMessage(`"x"`)},
			{Category: "Food", Amount: json.RawMessage(`10`)},
			{Category: "Fun", Amount: json.RawMessage(`-5`)},
			{Category: "Tips", Amount: json.RawMessage(`0.005`)},
			{Category: "Yacht", Amount: json.RawMessage(`1000000000000`)},
		}}
		_, err := mb.Validate(validate)
		verr, ok := err.(*core.ValidationError)
		require.True(t, ok, "got %T", err)
		assert.Equal(t, []core.FieldError{
			{Field: "entries[0].amount", Error: errInvalidAmount.Error()},
			{Field: "entries[2].amount", Error: errInvalidAmount.Error()},
			{Field: "entries[3].amount", Error: errAmountPrecision.Error()},
			{Field: "entries[4].amount", Error: errAmountTooLarge.Error()},
		}, verr.Fields)
	})

	t.Run("duplicate category", func(t *testing.T) {
		mb := MonthBudget{Entries: []EntryInput{
			{Category: "Rent", Amount: json.RawMessage(`1`)},
			{Category: " Rent ", Amount: json.RawMessage(`2`)},
		}}
		_, err := mb.Validate(validate)
		_, ok := err.(*core.ConflictError)
		assert.True(t, ok, "got %T", err)
	})

	t.Run("valid", func(t *testing.T) {
		mb := MonthBudget{Entries: []EntryInput{{Category: "Rent", Amount: json.RawMessage(`450.5`)}}}
		amounts, err := mb.Validate(validate)
		require.NoError(t, err)
		assert.Equal(t, "450.5", amounts[0].String())
	})
}
