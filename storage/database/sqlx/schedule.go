package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/schedule"
)

type scheduleRepository struct {
	repository
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{repository{db: db}}
}

// filterClause renders filter as a WHERE clause on the given owner and date columns.
func filterClause(filter schedule.Filter, ownerCol, dateCol string) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if !filter.AllUsers {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("%s = $%d", ownerCol, len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("%s >= $%d", dateCol, len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

// deleteRow deletes row id from table, restricted to filter's owner.
func (repo *scheduleRepository) deleteRow(ctx context.Context, table string, id int, filter schedule.Filter, notFound error, exec ...core.DBExecutor) error {
	q := "DELETE FROM " + table + " WHERE id = $1"
	args := []interface{}{id}
	if !filter.AllUsers {
		q += " AND user_id = $2"
		args = append(args, filter.UserID)
	}
	res, err := repo.getExec(exec...).ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "deleting from "+table)
	}
	return checkAffected(res, notFound)
}

// Timetable

func (repo *scheduleRepository) CreateTimetableEntry(ctx context.Context, e schedule.TimetableEntry, exec ...core.DBExecutor) (schedule.TimetableEntry, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &e.ID,
		`INSERT INTO timetable_entries (user_id, course_title, day_of_week, start_time, end_time, location)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		e.UserID, e.CourseTitle, e.DayOfWeek, e.StartTime, e.EndTime, e.Location)
	if err != nil {
		return schedule.TimetableEntry{}, errors.Wrap(err, "inserting timetable entry")
	}
	e.Username = ""
	return e, nil
}

func (repo *scheduleRepository) QueryTimetable(ctx context.Context, filter schedule.Filter, exec ...core.DBExecutor) ([]schedule.TimetableEntry, error) {
	q := `SELECT t.id, t.user_id, t.course_title, t.day_of_week, t.start_time, t.end_time, t.location, %s AS username
		FROM timetable_entries t JOIN users u ON u.id = t.user_id%s
		ORDER BY array_position($1::text[], t.day_of_week::text), t.start_time, t.id`
	args := []interface{}{pq.Array(core.Weekdays)}
	if filter.AllUsers {
		q = fmt.Sprintf(q, "u.username", "")
	} else {
		q = fmt.Sprintf(q, "''", " WHERE t.user_id = $2")
		args = append(args, filter.UserID)
	}

	entries := make([]schedule.TimetableEntry, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &entries, q, args...)
	return entries, err
}

func (repo *scheduleRepository) DeleteTimetableEntry(ctx context.Context, id, ownerID int, exec ...core.DBExecutor) error {
	return repo.deleteRow(ctx, "timetable_entries", id, schedule.Filter{UserID: ownerID}, schedule.ErrTimetableEntryNotFound, exec...)
}

func (repo *scheduleRepository) DeleteAnyTimetableEntry(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.deleteRow(ctx, "timetable_entries", id, schedule.Filter{AllUsers: true}, schedule.ErrTimetableEntryNotFound, exec...)
}

// Tests

func (repo *scheduleRepository) CreateTest(ctx context.Context, t schedule.Test, exec ...core.DBExecutor) (schedule.Test, error) {
	ext := repo.getExec(exec...)
	err := sqlx.GetContext(ctx, ext, &t.ID,
		`INSERT INTO tests (user_id, course_title, type, due_date, details)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		t.UserID, t.CourseTitle, t.Type, t.DueDate, t.Details)
	if err != nil {
		return schedule.Test{}, errors.Wrap(err, "inserting test")
	}
	if err = sqlx.GetContext(ctx, ext, &t.Username, "SELECT username FROM users WHERE id = $1", t.UserID); err != nil {
		return schedule.Test{}, errors.Wrap(err, "finding test owner")
	}
	return t, nil
}

func (repo *scheduleRepository) QueryTests(ctx context.Context, filter schedule.Filter, exec ...core.DBExecutor) ([]schedule.Test, error) {
	where, args := filterClause(filter, "t.user_id", "t.due_date")
	q := `SELECT t.id, t.user_id, u.username, t.course_title, t.type, t.due_date, t.details
		FROM tests t JOIN users u ON u.id = t.user_id` + where + " ORDER BY t.due_date, t.id" + limitClause(filter.Limit)

	tests := make([]schedule.Test, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &tests, q, args...)
	return tests, err
}

func (repo *scheduleRepository) DeleteTest(ctx context.Context, id, ownerID int, exec ...core.DBExecutor) error {
	return repo.deleteRow(ctx, "tests", id, schedule.Filter{UserID: ownerID}, schedule.ErrTestNotFound, exec...)
}

func (repo *scheduleRepository) DeleteAnyTest(ctx context.Context, id int, exec ...core.DBExecutor) error {
	return repo.deleteRow(ctx, "tests", id, schedule.Filter{AllUsers: true}, schedule.ErrTestNotFound, exec...)
}

// Appointments

func (repo *scheduleRepository) CreateAppointment(ctx context.Context, a schedule.Appointment, exec ...core.DBExecutor) (schedule.Appointment, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &a.ID,
		"INSERT INTO appointments (user_id, type, date_time, details) VALUES ($1, $2, $3, $4) RETURNING id",
		a.UserID, a.Type, a.DateTime, a.Details)
	if err != nil {
		return schedule.Appointment{}, errors.Wrap(err, "inserting appointment")
	}
	return a, nil
}

func (repo *scheduleRepository) QueryAppointments(ctx context.Context, filter schedule.Filter, exec ...core.DBExecutor) ([]schedule.Appointment, error) {
	where, args := filterClause(filter, "user_id", "date_time")
	q := "SELECT id, user_id, type, date_time, details FROM appointments" + where +
		" ORDER BY date_time, id" + limitClause(filter.Limit)

	appts := make([]schedule.Appointment, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &appts, q, args...)
	return appts, err
}

func (repo *scheduleRepository) DeleteAppointment(ctx context.Context, id, ownerID int, exec ...core.DBExecutor) error {
	return repo.deleteRow(ctx, "appointments", id, schedule.Filter{UserID: ownerID}, schedule.ErrAppointmentNotFound, exec...)
}
