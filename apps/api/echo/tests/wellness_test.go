package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/unisphere/apps/api/echo"
	"github.com/trezcool/unisphere/core/dashboard"
	"github.com/trezcool/unisphere/core/user"
	"github.com/trezcool/unisphere/core/wellness"
	"github.com/trezcool/unisphere/storage/database/inmem"
	"github.com/trezcool/unisphere/tests"
)

func Test_wellnessApi(t *testing.T) {
	db.Reset()
	student := testutil.CreateUser(t, usrRepo, "student", "pwd", false)
	other := testutil.CreateUser(t, usrRepo, "other", "pwd", false)
	token := getToken(t, student)

	tests := []httpTest{
		{
			name: "hydration amount required", method: http.MethodPost, path: "/api/hydration", token: token,
			body: []byte(`{"amount_ml": 0}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"amount_ml": "this field is required"}),
		},
		{
			name: "mood out of range", method: http.MethodPost, path: "/api/mood", token: token,
			body: []byte(`{"mood_score": 11}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"mood_score": "mood_score must be 10 or less"}),
		},
		{
			name: "empty hydration", method: http.MethodGet, path: "/api/hydration", token: token,
			wantData: marchallObj(t, wellness.HydrationSummary{TotalToday: 0, GoalML: conf.Wellness.HydrationGoalML}),
		},
		{name: "empty mood history", method: http.MethodGet, path: "/api/mood", token: token, wantData: marchallList(t)},
	}
	runHTTPTests(t, tests)

	t.Run("hydration summed for today", func(t *testing.T) {
		rec := serve(http.MethodPost, "/api/hydration", token, []byte(`{"amount_ml": 500}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = serve(http.MethodPost, "/api/hydration", token, []byte(`{"amount_ml": 750}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp HydrationLoggedResponse
		unmarshal(t, rec, &resp)
		assert.Equal(t, 750, resp.Entry.AmountML)
		assert.Equal(t, 1250, resp.TotalToday)

		// other users' intake is not counted
		rec = serve(http.MethodPost, "/api/hydration", getToken(t, other), []byte(`{"amount_ml": 300}`))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = serve(http.MethodGet, "/api/dashboard", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var d dashboard.Dashboard
		unmarshal(t, rec, &d)
		assert.Equal(t, 1250, d.Wellness.HydrationML)
		assert.Equal(t, conf.Wellness.HydrationGoalML, d.Wellness.GoalML)
	})

	t.Run("mood logged", func(t *testing.T) {
		rec := serve(http.MethodPost, "/api/mood", token, []byte(`{"mood_score": 7}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = serve(http.MethodGet, "/api/mood", token)
		var entries []wellness.MoodEntry
		unmarshal(t, rec, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, 7, entries[0].MoodScore)
		assert.Len(t, entries[0].EntryDate, len("2006-01-02"))
	})

	t.Run("study session logged", func(t *testing.T) {
		rec := serve(http.MethodPost, "/api/study_session", token, []byte(`{"topic": "Algebra", "duration_seconds": 1500}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var s wellness.StudySession
		unmarshal(t, rec, &s)
		require.True(t, s.EndTime.Valid)
		assert.Equal(t, 1500.0, s.EndTime.Time.Sub(s.StartTime).Seconds())
		assert.Equal(t, "Algebra", s.Topic.String)

		rec = serve(http.MethodGet, "/api/study_session", token)
		var sessions []wellness.StudySession
		unmarshal(t, rec, &sessions)
		assert.Len(t, sessions, 1)
	})
}

func Test_wellnessApi_moodHistory(t *testing.T) {
	db.Reset()
	student := testutil.CreateUser(t, usrRepo, "student", "pwd", false)
	other := testutil.CreateUser(t, usrRepo, "other", "pwd", false)
	repo := inmemdb.NewWellnessRepository(db)
	now := time.Now().UTC()

	logMood := func(usr user.User, score int, at time.Time) {
		_, err := repo.CreateMoodEntry(context.Background(), wellness.MoodEntry{
			UserID: usr.ID, MoodScore: score, EntryDate: at.Format("2006-01-02"), Timestamp: at,
		})
		require.NoError(t, err)
	}
	logMood(student, 5, now.Add(-time.Hour))
	logMood(student, 2, now.AddDate(0, 0, -31))
	logMood(student, 8, now.AddDate(0, 0, -10))
	logMood(other, 1, now.AddDate(0, 0, -5))
	logMood(student, 6, now.AddDate(0, 0, -20))

	rec := serve(http.MethodGet, "/api/mood", getToken(t, student))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var entries []wellness.MoodEntry
	unmarshal(t, rec, &entries)
	var scores []int
	for _, e := range entries {
		scores = append(scores, e.MoodScore)
	}
	assert.Equal(t, []int{6, 8, 5}, scores)

	rec = serve(http.MethodGet, "/api/mood", getToken(t, other))
	unmarshal(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].MoodScore)
}

func Test_dashboardApi(t *testing.T) {
	db.Reset()
	student := testutil.CreateUser(t, usrRepo, "student", "pwd", false)

	rec := serve(http.MethodGet, "/api/dashboard", getToken(t, student))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"user": {"id": `+itoa(student.ID)+`, "username": "student", "gpa": 0, "is_admin": false},
		"wellness": {"hydration_ml": 0, "goal_ml": `+itoa(conf.Wellness.HydrationGoalML)+`, "mood_history": []},
		"courses": [],
		"appointments": [],
		"timetable": [],
		"upcoming_tests": [],
		"finance": [],
		"notifications": {"unread_count": 0},
		"study_sessions": []
	}`, rec.Body.String())
}
