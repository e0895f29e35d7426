package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/wellness"
)

type wellnessRepository struct {
	db *DB
}

var _ wellness.Repository = (*wellnessRepository)(nil)

func NewWellnessRepository(db *DB) wellness.Repository {
	return &wellnessRepository{db: db}
}

func (repo *wellnessRepository) CreateHydrationEntry(_ context.Context, e wellness.HydrationEntry, _ ...core.DBExecutor) (wellness.HydrationEntry, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e.ID = repo.db.nextPK()
	repo.db.t.hydration[e.ID] = e
	return e, nil
}

func (repo *wellnessRepository) SumHydration(_ context.Context, userID int, from, to time.Time, _ ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var total int
	for _, e := range repo.db.t.hydration {
		if e.UserID == userID && !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			total += e.AmountML
		}
	}
	return total, nil
}

func (repo *wellnessRepository) CreateMoodEntry(_ context.Context, e wellness.MoodEntry, _ ...core.DBExecutor) (wellness.MoodEntry, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	e.ID = repo.db.nextPK()
	repo.db.t.moods[e.ID] = e
	return e, nil
}

func (repo *wellnessRepository) QueryMoodEntriesSince(_ context.Context, userID int, since time.Time, _ ...core.DBExecutor) ([]wellness.MoodEntry, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	entries := make([]wellness.MoodEntry, 0)
	for _, e := range repo.db.t.moods {
		if e.UserID == userID && !e.Timestamp.Before(since) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func (repo *wellnessRepository) CreateStudySession(_ context.Context, s wellness.StudySession, _ ...core.DBExecutor) (wellness.StudySession, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s.ID = repo.db.nextPK()
	repo.db.t.studySessions[s.ID] = s
	return s, nil
}

func (repo *wellnessRepository) QueryRecentStudySessions(_ context.Context, userID, limit int, _ ...core.DBExecutor) ([]wellness.StudySession, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	sessions := make([]wellness.StudySession, 0)
	for _, s := range repo.db.t.studySessions {
		if s.UserID == userID {
			sessions = append(sessions, s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		ei, ej := sessions[i].EndTime.Time, sessions[j].EndTime.Time
		if ei.Equal(ej) {
			return sessions[i].ID > sessions[j].ID
		}
		return ei.After(ej)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}
