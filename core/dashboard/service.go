package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/course"
	"github.com/trezcool/unisphere/core/finance"
	"github.com/trezcool/unisphere/core/notification"
	"github.com/trezcool/unisphere/core/schedule"
	"github.com/trezcool/unisphere/core/user"
	"github.com/trezcool/unisphere/core/wellness"
)

type (
	UserSummary struct {
		ID       int     `json:"id"`
		Username string  `json:"username"`
		GPA      float64 `json:"gpa"`
		IsAdmin  bool    `json:"is_admin"`
	}

	WellnessSummary struct {
		HydrationML int                  `json:"hydration_ml"`
		GoalML      int                  `json:"goal_ml"`
		MoodHistory []wellness.MoodEntry `json:"mood_history"`
	}

	NotificationSummary struct {
		UnreadCount int `json:"unread_count"`
	}

	// Dashboard is the caller's landing page: a read-only snapshot of every record type they own.
	Dashboard struct {
		User          UserSummary               `json:"user"`
		Wellness      WellnessSummary           `json:"wellness"`
		Courses       []course.Course           `json:"courses"`
		Appointments  []schedule.Appointment    `json:"appointments"`
		Timetable     []schedule.TimetableEntry `json:"timetable"`
		UpcomingTests []schedule.Test           `json:"upcoming_tests"`
		Finance       []finance.FinancialEntry  `json:"finance"`
		Notifications NotificationSummary       `json:"notifications"`
		StudySessions []wellness.StudySession   `json:"study_sessions"`
	}
)

type Service struct {
	users    *user.Service
	courses  *course.Service
	wellness *wellness.Service
	schedule *schedule.Service
	finance  *finance.Service
	notifs   *notification.Service
}

func NewService(
	users *user.Service,
	courses *course.Service,
	wellnessSvc *wellness.Service,
	scheduleSvc *schedule.Service,
	financeSvc *finance.Service,
	notifs *notification.Service,
) *Service {
	return &Service{
		users:    users,
		courses:  courses,
		wellness: wellnessSvc,
		schedule: scheduleSvc,
		finance:  financeSvc,
		notifs:   notifs,
	}
}

func (svc *Service) Get(ctx context.Context, actor core.Identity) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)

	usr, err := svc.users.Me(ctx, actor)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "getting user")
	}
	d.User = UserSummary{ID: usr.ID, Username: usr.Username, GPA: usr.GPA, IsAdmin: usr.IsAdmin}

	hydration, err := svc.wellness.HydrationToday(ctx, actor)
	if err != nil {
		return Dashboard{}, err
	}
	d.Wellness.HydrationML = hydration.TotalToday
	d.Wellness.GoalML = hydration.GoalML
	if d.Wellness.MoodHistory, err = svc.wellness.MoodHistory(ctx, actor); err != nil {
		return Dashboard{}, err
	}
	if d.StudySessions, err = svc.wellness.RecentStudySessions(ctx, actor); err != nil {
		return Dashboard{}, err
	}

	if d.Courses, err = svc.courses.Query(ctx, actor); err != nil {
		return Dashboard{}, err
	}
	if d.Appointments, err = svc.schedule.Appointments(ctx, actor, true /* upcoming */); err != nil {
		return Dashboard{}, err
	}
	if d.Timetable, err = svc.schedule.Timetable(ctx, actor); err != nil {
		return Dashboard{}, err
	}
	if d.UpcomingTests, err = svc.schedule.Tests(ctx, actor, true /* upcoming */); err != nil {
		return Dashboard{}, err
	}
	if d.Finance, err = svc.finance.CurrentMonth(ctx, actor); err != nil {
		return Dashboard{}, err
	}
	if d.Notifications.UnreadCount, err = svc.notifs.UnreadCount(ctx, actor); err != nil {
		return Dashboard{}, err
	}

	d.normalize()
	return d, nil
}

// normalize renders empty collections as [] rather than null.
func (d *Dashboard) normalize() {
	if d.Wellness.MoodHistory == nil {
		d.Wellness.MoodHistory = []wellness.MoodEntry{}
	}
	if d.StudySessions == nil {
		d.StudySessions = []wellness.StudySession{}
	}
	if d.Courses == nil {
		d.Courses = []course.Course{}
	}
	if d.Appointments == nil {
		d.Appointments = []schedule.Appointment{}
	}
	if d.Timetable == nil {
		d.Timetable = []schedule.TimetableEntry{}
	}
	if d.UpcomingTests == nil {
		d.UpcomingTests = []schedule.Test{}
	}
	if d.Finance == nil {
		d.Finance = []finance.FinancialEntry{}
	}
}
