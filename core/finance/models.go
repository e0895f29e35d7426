package finance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/unisphere/core"
)

func init() {
	// render amounts as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// amounts are stored as NUMERIC(14, 2)
var maxAmount = decimal.New(1, 12)

var (
	ErrCategoryExists = errors.New("an entry for this category already exists this month")

	errInvalidAmount     = errors.New("amount must be a non-negative number")
	errAmountPrecision   = errors.New("amount must have at most 2 decimal places")
	errAmountTooLarge    = errors.New("amount must be less than 1000000000000")
	errDuplicateCategory = errors.New("category listed more than once")
)

type FinancialEntry struct {
	ID        int             `json:"id" db:"id"`
	UserID    int             `json:"-" db:"user_id"`
	Category  string          `json:"category" db:"category"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	MonthYear string          `json:"month_year" db:"month_year"` // YYYY-MM
}

type EntryInput struct {
	Category string          `json:"category" validate:"required,notblank,max=50"`
	Amount   json.RawMessage `json:"amount" validate:"required"`
}

// MonthBudget is the full set of entries of the current month; categories left out are removed.
type MonthBudget struct {
	Entries []EntryInput `json:"entries" validate:"dive"`
}

// Validate checks every entry and returns their parsed amounts, indexed like Entries.
func (mb *MonthBudget) Validate(validate *validator.Validate) ([]decimal.Decimal, error) {
	for i := range mb.Entries {
		mb.Entries[i].Category = core.CleanString(mb.Entries[i].Category)
	}
	if err := validate.Struct(mb); err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, len(mb.Entries))
	seen := make(map[string]bool, len(mb.Entries))
	var fldErrs []core.FieldError
	for i, e := range mb.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		amount, err := parseAmount(e.Amount)
		if err != nil {
			if err != errAmountPrecision && err != errAmountTooLarge {
				err = errInvalidAmount
			}
			fldErrs = append(fldErrs, core.FieldError{Field: field + ".amount", Error: err.Error()})
			continue
		}
		amounts[i] = amount
		if seen[e.Category] {
			return nil, core.NewConflictError(errDuplicateCategory, core.FieldError{Field: field + ".category", Error: errDuplicateCategory.Error()})
		}
		seen[e.Category] = true
	}
	if fldErrs != nil {
		return nil, core.NewValidationError(errInvalidAmount, fldErrs...)
	}
	return amounts, nil
}

// parseAmount accepts a JSON number or a numeric string that fits NUMERIC(14, 2) exactly.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Decimal{}, errInvalidAmount
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Decimal{}, err
		}
		s = strings.TrimSpace(str)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch {
	case amount.IsNegative():
		return decimal.Decimal{}, errInvalidAmount
	case !amount.Equal(amount.Round(2)):
		return decimal.Decimal{}, errAmountPrecision
	case amount.GreaterThanOrEqual(maxAmount):
		return decimal.Decimal{}, errAmountTooLarge
	}
	return amount, nil
}
