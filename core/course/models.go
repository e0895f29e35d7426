package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/unisphere/core"
)

const (
	defaultScore   = 0
	defaultCredits = 3.0
)

type Course struct {
	ID      int     `json:"id" db:"id"`
	UserID  int     `json:"user_id" db:"user_id"`
	Title   string  `json:"title" db:"title"`
	Score   int     `json:"score" db:"score"`
	Credits float64 `json:"credits" db:"credits"`
}

// NewCourse contains information needed to create a Course. Score defaults to 0 and Credits to 3.0.
type NewCourse struct {
	Title   string   `json:"title" validate:"required,notblank,max=100"`
	Score   *int     `json:"score" validate:"required,min=0,max=100"`
	Credits *float64 `json:"credits" validate:"required,gt=0"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	if nc.Score == nil {
		score := defaultScore
		nc.Score = &score
	}
	if nc.Credits == nil {
		credits := defaultCredits
		nc.Credits = &credits
	}
	return validate.Struct(nc)
}
