package wellness

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unisphere/core"
)

type (
	Repository interface {
		CreateHydrationEntry(ctx context.Context, e HydrationEntry, exec ...core.DBExecutor) (HydrationEntry, error)
		// SumHydration totals the user's intake logged in [from, to).
		SumHydration(ctx context.Context, userID int, from, to time.Time, exec ...core.DBExecutor) (int, error)

		CreateMoodEntry(ctx context.Context, e MoodEntry, exec ...core.DBExecutor) (MoodEntry, error)
		// QueryMoodEntriesSince returns the user's entries logged at or after since, oldest first.
		QueryMoodEntriesSince(ctx context.Context, userID int, since time.Time, exec ...core.DBExecutor) ([]MoodEntry, error)

		CreateStudySession(ctx context.Context, s StudySession, exec ...core.DBExecutor) (StudySession, error)
		// QueryRecentStudySessions returns the user's latest sessions by end time, newest first.
		QueryRecentStudySessions(ctx context.Context, userID, limit int, exec ...core.DBExecutor) ([]StudySession, error)
	}

	Service struct {
		repo     Repository
		goalML   int
		validate *validator.Validate
		now      func() time.Time
	}
)

func NewService(conf *core.Config, repo Repository, validate *validator.Validate) *Service {
	return &Service{
		repo:     repo,
		goalML:   conf.Wellness.HydrationGoalML,
		validate: validate,
		now:      time.Now,
	}
}

// Hydration

func (svc *Service) HydrationToday(ctx context.Context, actor core.Identity) (HydrationSummary, error) {
	start := core.StartOfDay(svc.now())
	total, err := svc.repo.SumHydration(ctx, actor.ID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return HydrationSummary{}, errors.Wrap(err, "summing hydration")
	}
	return HydrationSummary{TotalToday: total, GoalML: svc.goalML}, nil
}

// LogHydration appends an intake entry and returns it with the updated daily total.
func (svc *Service) LogHydration(ctx context.Context, actor core.Identity, nh NewHydrationEntry) (HydrationEntry, HydrationSummary, error) {
	if err := nh.Validate(svc.validate); err != nil {
		return HydrationEntry{}, HydrationSummary{}, err
	}
	e, err := svc.repo.CreateHydrationEntry(ctx, HydrationEntry{
		UserID:    actor.ID,
		AmountML:  nh.AmountML,
		Timestamp: svc.now().UTC(),
	})
	if err != nil {
		return HydrationEntry{}, HydrationSummary{}, errors.Wrap(err, "creating hydration entry")
	}
	summary, err := svc.HydrationToday(ctx, actor)
	if err != nil {
		return HydrationEntry{}, HydrationSummary{}, err
	}
	return e, summary, nil
}

// Mood

// MoodHistory returns the caller's mood entries of the trailing 30 days, oldest first.
func (svc *Service) MoodHistory(ctx context.Context, actor core.Identity) ([]MoodEntry, error) {
	entries, err := svc.repo.QueryMoodEntriesSince(ctx, actor.ID, svc.now().UTC().Add(-moodWindow))
	if err != nil {
		return nil, errors.Wrap(err, "querying mood entries")
	}
	return entries, nil
}

func (svc *Service) LogMood(ctx context.Context, actor core.Identity, nm NewMoodEntry) (MoodEntry, error) {
	if err := nm.Validate(svc.validate); err != nil {
		return MoodEntry{}, err
	}
	now := svc.now().UTC()
	e, err := svc.repo.CreateMoodEntry(ctx, MoodEntry{
		UserID:    actor.ID,
		MoodScore: nm.MoodScore,
		EntryDate: now.Format(entryDateLayout),
		Timestamp: now,
	})
	if err != nil {
		return MoodEntry{}, errors.Wrap(err, "creating mood entry")
	}
	return e, nil
}

// Study sessions

func (svc *Service) RecentStudySessions(ctx context.Context, actor core.Identity) ([]StudySession, error) {
	sessions, err := svc.repo.QueryRecentStudySessions(ctx, actor.ID, recentStudyLimit)
	if err != nil {
		return nil, errors.Wrap(err, "querying study sessions")
	}
	return sessions, nil
}

// LogStudySession records a session that just ended and lasted DurationSeconds.
func (svc *Service) LogStudySession(ctx context.Context, actor core.Identity, ns NewStudySession) (StudySession, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return StudySession{}, err
	}
	end := svc.now().UTC()
	s := StudySession{
		UserID:          actor.ID,
		DurationSeconds: ns.DurationSeconds,
		StartTime:       end.Add(-time.Duration(ns.DurationSeconds) * time.Second),
		EndTime:         null.TimeFrom(end),
	}
	if ns.Topic != "" {
		s.Topic = null.StringFrom(ns.Topic)
	}
	s, err := svc.repo.CreateStudySession(ctx, s)
	if err != nil {
		return StudySession{}, errors.Wrap(err, "creating study session")
	}
	return s, nil
}
