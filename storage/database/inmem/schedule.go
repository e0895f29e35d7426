package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) username(id int) string {
	return repo.db.t.users[id].Username
}

// Timetable

func (repo *scheduleRepository) CreateTimetableEntry(_ context.Context, e schedule.TimetableEntry, _ ...core.DBExecutor) (schedule.TimetableEntry, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e.ID = repo.db.nextPK()
	e.Username = ""
	repo.db.t.timetable[e.ID] = e
	return e, nil
}

func (repo *scheduleRepository) QueryTimetable(_ context.Context, filter schedule.Filter, _ ...core.DBExecutor) ([]schedule.TimetableEntry, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	entries := make([]schedule.TimetableEntry, 0)
	for _, e := range repo.db.t.timetable {
		if !filter.Owns(e.UserID) {
			continue
		}
		if filter.AllUsers {
			e.Username = repo.username(e.UserID)
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		di, dj := core.WeekdayIndex(entries[i].DayOfWeek), core.WeekdayIndex(entries[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		if entries[i].StartTime != entries[j].StartTime {
			return entries[i].StartTime < entries[j].StartTime
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func (repo *scheduleRepository) DeleteTimetableEntry(_ context.Context, id, ownerID int, _ ...core.DBExecutor) error {
	return repo.deleteTimetableEntry(id, schedule.Filter{UserID: ownerID})
}

func (repo *scheduleRepository) DeleteAnyTimetableEntry(_ context.Context, id int, _ ...core.DBExecutor) error {
	return repo.deleteTimetableEntry(id, schedule.Filter{AllUsers: true})
}

func (repo *scheduleRepository) deleteTimetableEntry(id int, filter schedule.Filter) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e, ok := repo.db.t.timetable[id]
	if !ok || !filter.Owns(e.UserID) {
		return schedule.ErrTimetableEntryNotFound
	}
	delete(repo.db.t.timetable, id)
	return nil
}

// Tests

func (repo *scheduleRepository) CreateTest(_ context.Context, t schedule.Test, _ ...core.DBExecutor) (schedule.Test, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	t.ID = repo.db.nextPK()
	t.Username = ""
	repo.db.t.tests[t.ID] = t
	t.Username = repo.username(t.UserID)
	return t, nil
}

func (repo *scheduleRepository) QueryTests(_ context.Context, filter schedule.Filter, _ ...core.DBExecutor) ([]schedule.Test, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	tests := make([]schedule.Test, 0)
	for _, t := range repo.db.t.tests {
		if !filter.Owns(t.UserID) {
			continue
		}
		if !filter.From.IsZero() && t.DueDate.Before(filter.From) {
			continue
		}
		t.Username = repo.username(t.UserID)
		tests = append(tests, t)
	}
	sort.Slice(tests, func(i, j int) bool {
		if tests[i].DueDate.Equal(tests[j].DueDate) {
			return tests[i].ID < tests[j].ID
		}
		return tests[i].DueDate.Before(tests[j].DueDate)
	})
	if filter.Limit > 0 && len(tests) > filter.Limit {
		tests = tests[:filter.Limit]
	}
	return tests, nil
}

func (repo *scheduleRepository) DeleteTest(_ context.Context, id, ownerID int, _ ...core.DBExecutor) error {
	return repo.deleteTest(id, schedule.Filter{UserID: ownerID})
}

func (repo *scheduleRepository) DeleteAnyTest(_ context.Context, id int, _ ...core.DBExecutor) error {
	return repo.deleteTest(id, schedule.Filter{AllUsers: true})
}

func (repo *scheduleRepository) deleteTest(id int, filter schedule.Filter) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	t, ok := repo.db.t.tests[id]
	if !ok || !filter.Owns(t.UserID) {
		return schedule.ErrTestNotFound
	}
	delete(repo.db.t.tests, id)
	return nil
}

// Appointments

func (repo *scheduleRepository) CreateAppointment(_ context.Context, a schedule.Appointment, _ ...core.DBExecutor) (schedule.Appointment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	a.ID = repo.db.nextPK()
	repo.db.t.appointments[a.ID] = a
	return a, nil
}

func (repo *scheduleRepository) QueryAppointments(_ context.Context, filter schedule.Filter, _ ...core.DBExecutor) ([]schedule.Appointment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	appts := make([]schedule.Appointment, 0)
	for _, a := range repo.db.t.appointments {
		if !filter.Owns(a.UserID) {
			continue
		}
		if !filter.From.IsZero() && a.DateTime.Before(filter.From) {
			continue
		}
		appts = append(appts, a)
	}
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].DateTime.Equal(appts[j].DateTime) {
			return appts[i].ID < appts[j].ID
		}
		return appts[i].DateTime.Before(appts[j].DateTime)
	})
	if filter.Limit > 0 && len(appts) > filter.Limit {
		appts = appts[:filter.Limit]
	}
	return appts, nil
}

func (repo *scheduleRepository) DeleteAppointment(_ context.Context, id, ownerID int, _ ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	a, ok := repo.db.t.appointments[id]
	if !ok || ownerID == 0 || a.UserID != ownerID {
		return schedule.ErrAppointmentNotFound
	}
	delete(repo.db.t.appointments, id)
	return nil
}
