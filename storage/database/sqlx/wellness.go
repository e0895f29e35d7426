package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/wellness"
)

type wellnessRepository struct {
	repository
}

var _ wellness.Repository = (*wellnessRepository)(nil)

func NewWellnessRepository(db *sqlx.DB) wellness.Repository {
	return &wellnessRepository{repository{db: db}}
}

func (repo *wellnessRepository) CreateHydrationEntry(ctx context.Context, e wellness.HydrationEntry, exec ...core.DBExecutor) (wellness.HydrationEntry, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &e.ID,
		"INSERT INTO hydration_entries (user_id, amount_ml, timestamp) VALUES ($1, $2, $3) RETURNING id",
		e.UserID, e.AmountML, e.Timestamp)
	if err != nil {
		return wellness.HydrationEntry{}, errors.Wrap(err, "inserting hydration entry")
	}
	return e, nil
}

func (repo *wellnessRepository) SumHydration(ctx context.Context, userID int, from, to time.Time, exec ...core.DBExecutor) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &total,
		`SELECT COALESCE(SUM(amount_ml), 0) FROM hydration_entries
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3`, userID, from, to)
	return total, err
}

func (repo *wellnessRepository) CreateMoodEntry(ctx context.Context, e wellness.MoodEntry, exec ...core.DBExecutor) (wellness.MoodEntry, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &e.ID,
		"INSERT INTO mood_entries (user_id, mood_score, entry_date, timestamp) VALUES ($1, $2, $3, $4) RETURNING id",
		e.UserID, e.MoodScore, e.EntryDate, e.Timestamp)
	if err != nil {
		return wellness.MoodEntry{}, errors.Wrap(err, "inserting mood entry")
	}
	return e, nil
}

func (repo *wellnessRepository) QueryMoodEntriesSince(ctx context.Context, userID int, since time.Time, exec ...core.DBExecutor) ([]wellness.MoodEntry, error) {
	entries := make([]wellness.MoodEntry, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &entries,
		`SELECT id, user_id, mood_score, to_char(entry_date, 'YYYY-MM-DD') AS entry_date, timestamp
		FROM mood_entries WHERE user_id = $1 AND timestamp >= $2 ORDER BY timestamp, id`, userID, since)
	return entries, err
}

func (repo *wellnessRepository) CreateStudySession(ctx context.Context, s wellness.StudySession, exec ...core.DBExecutor) (wellness.StudySession, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &s.ID,
		`INSERT INTO study_sessions (user_id, topic, duration_seconds, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.UserID, s.Topic, s.DurationSeconds, s.StartTime, s.EndTime)
	if err != nil {
		return wellness.StudySession{}, errors.Wrap(err, "inserting study session")
	}
	return s, nil
}

func (repo *wellnessRepository) QueryRecentStudySessions(ctx context.Context, userID, limit int, exec ...core.DBExecutor) ([]wellness.StudySession, error) {
	sessions := make([]wellness.StudySession, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &sessions,
		`SELECT id, user_id, topic, duration_seconds, start_time, end_time FROM study_sessions
		WHERE user_id = $1 ORDER BY end_time DESC NULLS LAST, id DESC LIMIT $2`, userID, limit)
	return sessions, err
}
