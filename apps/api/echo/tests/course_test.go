package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/unisphere/apps/api/echo"
	"github.com/trezcool/unisphere/core/course"
	"github.com/trezcool/unisphere/core/notification"
	"github.com/trezcool/unisphere/tests"
)

func Test_courseApi(t *testing.T) {
	db.Reset()
	student := testutil.CreateUser(t, usrRepo, "student", "pwd", false)
	other := testutil.CreateUser(t, usrRepo, "other", "pwd", false)
	token := getToken(t, student)
	otherToken := getToken(t, other)

	create := func(t *testing.T, body string) CourseCreatedResponse {
		rec := serve(http.MethodPost, "/api/courses", token, []byte(body))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp CourseCreatedResponse
		unmarshal(t, rec, &resp)
		return resp
	}

	t.Run("validation", func(t *testing.T) {
		rec := serve(http.MethodPost, "/api/courses", token, []byte(`{"title": " ", "score": 101}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"title": "this field is required", "score": "score must be 100 or less"}`, rec.Body.String())
	})

	var physics CourseCreatedResponse
	t.Run("gpa recomputed on create", func(t *testing.T) {
		math := create(t, `{"title": "Math", "score": 85, "credits": 4}`)
		assert.Equal(t, 3.0, math.GPA)
		assert.Equal(t, student.ID, math.Course.UserID)

		physics = create(t, `{"title": "Physics", "score": 92, "credits": 3}`)
		assert.Equal(t, 3.43, physics.GPA)

		chem := create(t, `{"title": "Chemistry", "score": 78, "credits": 3}`)
		assert.Equal(t, 3.0, chem.GPA)

		rec := serve(http.MethodGet, "/api/me", token)
		assert.Contains(t, rec.Body.String(), `"gpa":3`)
	})

	t.Run("defaults", func(t *testing.T) {
		rec := serve(http.MethodPost, "/api/courses", otherToken, []byte(`{"title": "Art"}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp CourseCreatedResponse
		unmarshal(t, rec, &resp)
		assert.Equal(t, 0, resp.Course.Score)
		assert.Equal(t, 3.0, resp.Course.Credits)
		assert.Equal(t, 0.0, resp.GPA)
	})

	t.Run("owned courses ordered by title", func(t *testing.T) {
		rec := serve(http.MethodGet, "/api/courses", token)
		require.Equal(t, http.StatusOK, rec.Code)
		var courses []course.Course
		unmarshal(t, rec, &courses)
		titles := make([]string, 0, len(courses))
		for _, c := range courses {
			titles = append(titles, c.Title)
		}
		assert.Equal(t, []string{"Chemistry", "Math", "Physics"}, titles)
	})

	t.Run("foreign course not found", func(t *testing.T) {
		rec := serve(http.MethodDelete, "/api/courses/"+itoa(physics.Course.ID), otherToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error": "course not found"}`, rec.Body.String())
	})

	t.Run("gpa notifications", func(t *testing.T) {
		rec := serve(http.MethodGet, "/api/notifications", token)
		require.Equal(t, http.StatusOK, rec.Code)
		var notifs []notification.Notification
		unmarshal(t, rec, &notifs)
		require.Len(t, notifs, 3)
		assert.Equal(t, "Your GPA is now 3.00.", notifs[0].Message)
	})

	t.Run("deleting every course resets gpa", func(t *testing.T) {
		rec := serve(http.MethodGet, "/api/courses", token)
		var courses []course.Course
		unmarshal(t, rec, &courses)

		var last GPAResponse
		for _, c := range courses {
			rec = serve(http.MethodDelete, "/api/courses/"+itoa(c.ID), token)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			unmarshal(t, rec, &last)
		}
		assert.Equal(t, 0.0, last.GPA)
	})
}
