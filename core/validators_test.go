package core

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validated struct {
	Title string `json:"title" validate:"required,notblank"`
	Start string `json:"start_time" validate:"required,hhmm"`
	Day   string `json:"day_of_week" validate:"required,weekday"`
}

func newTestValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	InitValidators(validate, translator)
	return validate, translator
}

func TestInitValidators(t *testing.T) {
	validate, translator := newTestValidator()

	tests := []struct {
		name string
		in   validated
		want map[string]string
	}{
		{name: "valid", in: validated{Title: "Calculus", Start: "09:30", Day: "Monday"}},
		{
			name: "missing",
			in:   validated{},
			want: map[string]string{
				"title":       requiredText,
				"start_time":  requiredText,
				"day_of_week": requiredText,
			},
		},
		{
			name: "malformed",
			in:   validated{Title: "   ", Start: "9:30", Day: "monday"},
			want: map[string]string{
				"title":       notBlankText,
				"start_time":  clockTimeText,
				"day_of_week": weekdayText,
			},
		},
		{
			name: "out of range clock",
			in:   validated{Title: "x", Start: "24:00", Day: "Sunday"},
			want: map[string]string{"start_time": clockTimeText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "got %T", err)

			got := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex("Monday"))
	assert.Equal(t, 6, WeekdayIndex("Sunday"))
	assert.Equal(t, len(Weekdays), WeekdayIndex("Funday"))
}
