package schedule

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

var (
	// errors
	ErrTimetableEntryNotFound = core.NewNotFoundError("timetable entry")
	ErrTestNotFound           = core.NewNotFoundError("test")
	ErrAppointmentNotFound    = core.NewNotFoundError("appointment")

	errEndBeforeStart  = errors.New("end_time must be after start_time")
	errPastAppointment = errors.New("cannot book an appointment in the past")
)

// Filter narrows schedule queries to UserID's rows, or to every user's rows when AllUsers is set.
// A zero From or Limit disables that criterion.
type Filter struct {
	UserID   int
	AllUsers bool
	From     time.Time // inclusive
	Limit    int
}

// Owns reports whether a row owned by userID passes the owner criterion.
// UserID 0 owns nothing.
func (f Filter) Owns(userID int) bool {
	return f.AllUsers || (f.UserID != 0 && f.UserID == userID)
}

type (
	Repository interface {
		CreateTimetableEntry(ctx context.Context, e TimetableEntry, exec ...core.DBExecutor) (TimetableEntry, error)
		// QueryTimetable returns entries ordered by weekday (Monday first) then start time.
		// AllUsers listings carry each entry's username.
		QueryTimetable(ctx context.Context, filter Filter, exec ...core.DBExecutor) ([]TimetableEntry, error)
		// DeleteTimetableEntry deletes entry id if ownerID owns it.
		DeleteTimetableEntry(ctx context.Context, id, ownerID int, exec ...core.DBExecutor) error
		DeleteAnyTimetableEntry(ctx context.Context, id int, exec ...core.DBExecutor) error

		CreateTest(ctx context.Context, t Test, exec ...core.DBExecutor) (Test, error)
		// QueryTests returns tests by ascending due date, with their owner's username.
		QueryTests(ctx context.Context, filter Filter, exec ...core.DBExecutor) ([]Test, error)
		DeleteTest(ctx context.Context, id, ownerID int, exec ...core.DBExecutor) error
		DeleteAnyTest(ctx context.Context, id int, exec ...core.DBExecutor) error

		CreateAppointment(ctx context.Context, a Appointment, exec ...core.DBExecutor) (Appointment, error)
		// QueryAppointments returns appointments by ascending date.
		QueryAppointments(ctx context.Context, filter Filter, exec ...core.DBExecutor) ([]Appointment, error)
		DeleteAppointment(ctx context.Context, id, ownerID int, exec ...core.DBExecutor) error
	}

	UserFinder interface {
		GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (user.User, error)
	}

	Service struct {
		repo     Repository
		users    UserFinder
		validate *validator.Validate
		now      func() time.Time
	}
)

func NewService(repo Repository, users UserFinder, validate *validator.Validate) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		validate: validate,
		now:      time.Now,
	}
}

// Timetable

func (svc *Service) Timetable(ctx context.Context, actor core.Identity) ([]TimetableEntry, error) {
	entries, err := svc.repo.QueryTimetable(ctx, Filter{UserID: actor.ID})
	if err != nil {
		return nil, errors.Wrap(err, "querying timetable")
	}
	return entries, nil
}

func (svc *Service) AddTimetableEntry(ctx context.Context, actor core.Identity, nt NewTimetableEntry) (TimetableEntry, error) {
	nt.UserID = actor.ID
	return svc.createTimetableEntry(ctx, nt)
}

func (svc *Service) DeleteTimetableEntry(ctx context.Context, actor core.Identity, id int) error {
	return svc.repo.DeleteTimetableEntry(ctx, id, actor.ID)
}

func (svc *Service) createTimetableEntry(ctx context.Context, nt NewTimetableEntry) (TimetableEntry, error) {
	if err := nt.Validate(svc.validate); err != nil {
		return TimetableEntry{}, err
	}
	e, err := svc.repo.CreateTimetableEntry(ctx, TimetableEntry{
		UserID:      nt.UserID,
		CourseTitle: nt.CourseTitle,
		DayOfWeek:   nt.DayOfWeek,
		StartTime:   nt.StartTime,
		EndTime:     nt.EndTime,
		Location:    nullString(nt.Location),
	})
	if err != nil {
		return TimetableEntry{}, errors.Wrap(err, "creating timetable entry")
	}
	return e, nil
}

// Tests

// Tests returns the caller's tests; upcoming keeps only those due from now on.
func (svc *Service) Tests(ctx context.Context, actor core.Identity, upcoming bool) ([]Test, error) {
	filter := Filter{UserID: actor.ID}
	if upcoming {
		filter.From = svc.now().UTC()
	}
	tests, err := svc.repo.QueryTests(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying tests")
	}
	return tests, nil
}

// Appointments

// Appointments returns the caller's appointments; upcoming keeps the next five from now on.
func (svc *Service) Appointments(ctx context.Context, actor core.Identity, upcoming bool) ([]Appointment, error) {
	filter := Filter{UserID: actor.ID}
	if upcoming {
		filter.From = svc.now().UTC()
		filter.Limit = upcomingApptLimit
	}
	appts, err := svc.repo.QueryAppointments(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying appointments")
	}
	return appts, nil
}

func (svc *Service) BookAppointment(ctx context.Context, actor core.Identity, na NewAppointment) (Appointment, error) {
	if err := na.Validate(svc.validate, svc.now()); err != nil {
		return Appointment{}, err
	}
	a, err := svc.repo.CreateAppointment(ctx, Appointment{
		UserID:   actor.ID,
		Type:     na.Type,
		DateTime: na.dateTime,
		Details:  nullString(na.Details),
	})
	if err != nil {
		return Appointment{}, errors.Wrap(err, "creating appointment")
	}
	return a, nil
}

func (svc *Service) CancelAppointment(ctx context.Context, actor core.Identity, id int) error {
	return svc.repo.DeleteAppointment(ctx, id, actor.ID)
}

// Administration

func (svc *Service) AdminTimetable(ctx context.Context, actor core.Identity) ([]TimetableEntry, error) {
	if !actor.IsAdmin {
		return nil, core.ErrForbidden
	}
	entries, err := svc.repo.QueryTimetable(ctx, Filter{AllUsers: true})
	if err != nil {
		return nil, errors.Wrap(err, "querying timetable")
	}
	return entries, nil
}

func (svc *Service) AdminAddTimetableEntry(ctx context.Context, actor core.Identity, nt NewTimetableEntry) (TimetableEntry, error) {
	if !actor.IsAdmin {
		return TimetableEntry{}, core.ErrForbidden
	}
	if _, err := svc.users.GetUserByID(ctx, nt.UserID); err != nil {
		return TimetableEntry{}, err
	}
	return svc.createTimetableEntry(ctx, nt)
}

func (svc *Service) AdminDeleteTimetableEntry(ctx context.Context, actor core.Identity, id int) error {
	if !actor.IsAdmin {
		return core.ErrForbidden
	}
	return svc.repo.DeleteAnyTimetableEntry(ctx, id)
}

func (svc *Service) AdminTests(ctx context.Context, actor core.Identity) ([]Test, error) {
	if !actor.IsAdmin {
		return nil, core.ErrForbidden
	}
	tests, err := svc.repo.QueryTests(ctx, Filter{AllUsers: true})
	if err != nil {
		return nil, errors.Wrap(err, "querying tests")
	}
	return tests, nil
}

func (svc *Service) AdminAddTest(ctx context.Context, actor core.Identity, nt NewTest) (Test, error) {
	if !actor.IsAdmin {
		return Test{}, core.ErrForbidden
	}
	if err := nt.Validate(svc.validate); err != nil {
		return Test{}, err
	}
	if _, err := svc.users.GetUserByID(ctx, nt.UserID); err != nil {
		return Test{}, err
	}
	t, err := svc.repo.CreateTest(ctx, Test{
		UserID:      nt.UserID,
		CourseTitle: nt.CourseTitle,
		Type:        nt.Type,
		DueDate:     nt.dueDate,
		Details:     nullString(nt.Details),
	})
	if err != nil {
		return Test{}, errors.Wrap(err, "creating test")
	}
	return t, nil
}

func (svc *Service) AdminDeleteTest(ctx context.Context, actor core.Identity, id int) error {
	if !actor.IsAdmin {
		return core.ErrForbidden
	}
	return svc.repo.DeleteAnyTest(ctx, id)
}
