package wellness

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unisphere/core"
)

const (
	moodWindow       = 30 * 24 * time.Hour
	recentStudyLimit = 10
	entryDateLayout  = "2006-01-02"
)

type HydrationEntry struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"-" db:"user_id"`
	AmountML  int       `json:"amount_ml" db:"amount_ml"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"` // UTC
}

type MoodEntry struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"-" db:"user_id"`
	MoodScore int       `json:"mood_score" db:"mood_score"`
	EntryDate string    `json:"entry_date" db:"entry_date"` // YYYY-MM-DD (UTC)
	Timestamp time.Time `json:"timestamp" db:"timestamp"`   // UTC
}

type StudySession struct {
	ID              int         `json:"id" db:"id"`
	UserID          int         `json:"-" db:"user_id"`
	Topic           null.String `json:"topic" db:"topic"`
	DurationSeconds int         `json:"duration_seconds" db:"duration_seconds"`
	StartTime       time.Time   `json:"start_time" db:"start_time"` // UTC
	EndTime         null.Time   `json:"end_time" db:"end_time"`     // UTC
}

// HydrationSummary is the caller's intake for the current UTC day.
type HydrationSummary struct {
	TotalToday int `json:"total_today"`
	GoalML     int `json:"goal_ml"`
}

type NewHydrationEntry struct {
	AmountML int `json:"amount_ml" validate:"required,gt=0"`
}

func (nh *NewHydrationEntry) Validate(validate *validator.Validate) error {
	return validate.Struct(nh)
}

type NewMoodEntry struct {
	MoodScore int `json:"mood_score" validate:"required,min=1,max=10"`
}

func (nm *NewMoodEntry) Validate(validate *validator.Validate) error {
	return validate.Struct(nm)
}

type NewStudySession struct {
	Topic           string `json:"topic" validate:"max=100"`
	DurationSeconds int    `json:"duration_seconds" validate:"required,gt=0"`
}

func (ns *NewStudySession) Validate(validate *validator.Validate) error {
	ns.Topic = core.CleanString(ns.Topic)
	return validate.Struct(ns)
}
