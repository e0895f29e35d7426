package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unisphere/core"
)

const (
	dateLayout        = "2006-01-02"
	clockLayout       = "15:04"
	dateTimeLayout    = dateLayout + " " + clockLayout
	upcomingApptLimit = 5
)

type TimetableEntry struct {
	ID          int         `json:"id" db:"id"`
	UserID      int         `json:"user_id" db:"user_id"`
	Username    string      `json:"username,omitempty" db:"username"` // admin listing only
	CourseTitle string      `json:"course_title" db:"course_title"`
	DayOfWeek   string      `json:"day_of_week" db:"day_of_week"`
	StartTime   string      `json:"start_time" db:"start_time"` // HH:MM
	EndTime     string      `json:"end_time" db:"end_time"`     // HH:MM
	Location    null.String `json:"location" db:"location"`
}

type Test struct {
	ID          int         `json:"id" db:"id"`
	UserID      int         `json:"user_id" db:"user_id"`
	Username    string      `json:"username,omitempty" db:"username"` // admin listing only
	CourseTitle string      `json:"course_title" db:"course_title"`
	Type        string      `json:"type" db:"type"`
	DueDate     time.Time   `json:"due_date" db:"due_date"` // UTC
	Details     null.String `json:"details" db:"details"`
}

type Appointment struct {
	ID       int         `json:"id" db:"id"`
	UserID   int         `json:"user_id" db:"user_id"`
	Type     string      `json:"type" db:"type"`
	DateTime time.Time   `json:"date_time" db:"date_time"` // UTC
	Details  null.String `json:"details" db:"details"`
}

// NewTimetableEntry contains information needed to create a TimetableEntry.
// UserID is only read on admin creation.
type NewTimetableEntry struct {
	UserID      int    `json:"user_id"`
	CourseTitle string `json:"course_title" validate:"required,notblank,max=100"`
	DayOfWeek   string `json:"day_of_week" validate:"required,weekday"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Location    string `json:"location" validate:"max=100"`
}

func (nt *NewTimetableEntry) Validate(validate *validator.Validate) error {
	nt.CourseTitle = core.CleanString(nt.CourseTitle)
	nt.DayOfWeek = core.CleanString(nt.DayOfWeek)
	nt.StartTime = core.CleanString(nt.StartTime)
	nt.EndTime = core.CleanString(nt.EndTime)
	nt.Location = core.CleanString(nt.Location)
	if err := validate.Struct(nt); err != nil {
		return err
	}
	// zero-padded HH:MM values order lexically
	if nt.EndTime <= nt.StartTime {
		return core.NewValidationError(errEndBeforeStart, core.FieldError{Field: "end_time", Error: errEndBeforeStart.Error()})
	}
	return nil
}

// NewTest contains information needed to create a Test (admin only).
type NewTest struct {
	UserID      int    `json:"user_id" validate:"required,gt=0"`
	CourseTitle string `json:"course_title" validate:"required,notblank,max=100"`
	Type        string `json:"type" validate:"required,notblank,max=50"`
	DueDate     string `json:"due_date" validate:"required"` // ISO-8601
	Details     string `json:"details"`

	dueDate time.Time
}

func (nt *NewTest) Validate(validate *validator.Validate) error {
	nt.CourseTitle = core.CleanString(nt.CourseTitle)
	nt.Type = core.CleanString(nt.Type)
	nt.DueDate = core.CleanString(nt.DueDate)
	nt.Details = core.CleanString(nt.Details)
	if err := validate.Struct(nt); err != nil {
		return err
	}

	due, err := parseISODateTime(nt.DueDate)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "due_date", Error: "invalid date format"})
	}
	nt.dueDate = due
	return nil
}

// NewAppointment contains information needed to book an Appointment at Date Time (UTC).
type NewAppointment struct {
	Type    string `json:"type" validate:"required,notblank,max=50"`
	Date    string `json:"date" validate:"required"` // YYYY-MM-DD
	Time    string `json:"time" validate:"required,hhmm"`
	Details string `json:"details"`

	dateTime time.Time
}

func (na *NewAppointment) Validate(validate *validator.Validate, now time.Time) error {
	na.Type = core.CleanString(na.Type)
	na.Date = core.CleanString(na.Date)
	na.Time = core.CleanString(na.Time)
	na.Details = core.CleanString(na.Details)
	if err := validate.Struct(na); err != nil {
		return err
	}

	dt, err := time.ParseInLocation(dateTimeLayout, na.Date+" "+na.Time, time.UTC)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "date must use the YYYY-MM-DD format"})
	}
	if dt.Before(now.UTC().Truncate(time.Minute)) {
		return core.NewValidationError(errPastAppointment, core.FieldError{Field: "date", Error: errPastAppointment.Error()})
	}
	na.dateTime = dt
	return nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	dateTimeLayout,
	dateLayout,
}

// parseISODateTime parses an ISO-8601 date or datetime. Values without an offset are read as UTC.
func parseISODateTime(s string) (time.Time, error) {
	var err error
	for _, layout := range isoLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func nullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
