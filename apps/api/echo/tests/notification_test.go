package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	. "github.com/trezcool/unisphere/apps/api/echo"
	"github.com/trezcool/unisphere/core/notification"
	"github.com/trezcool/unisphere/tests"
)

func Test_notificationApi(t *testing.T) {
	db.Reset()
	student := testutil.CreateUser(t, usrRepo, "student", "pwd", false)
	admin := testutil.CreateUser(t, usrRepo, "admin", "pwd", true)
	token := getToken(t, student)
	adminToken := getToken(t, admin)

	student.Email = null.StringFrom("student@test.cd")
	if _, err := usrRepo.UpdateUser(context.Background(), student); err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}

	unread := func(t *testing.T) int {
		rec := serve(http.MethodGet, "/api/notifications/unread", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp UnreadCountResponse
		unmarshal(t, rec, &resp)
		return resp.UnreadCount
	}

	var ids []int
	t.Run("admin sends", func(t *testing.T) {
		rec := serve(http.MethodPost, "/api/admin/notifications", token, []byte(`{"user_id": 1, "message": "hi"}`))
		assert.Equal(t, http.StatusForbidden, rec.Code)

		sentBefore := len(mailSvc.SentMessages())
		for i := 1; i <= 2; i++ {
			body := fmt.Sprintf(`{"user_id": %d, "message": "Reminder %d"}`, student.ID, i)
			rec = serve(http.MethodPost, "/api/admin/notifications", adminToken, []byte(body))
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			var n notification.Notification
			unmarshal(t, rec, &n)
			assert.False(t, n.IsRead)
			ids = append(ids, n.ID)
			time.Sleep(time.Millisecond)
		}

		sent := mailSvc.SentMessages()[sentBefore:]
		require.Len(t, sent, 2)
		assert.Equal(t, "student@test.cd", sent[0].To[0].Address)
		assert.Equal(t, "Reminder 1", sent[0].Body)

		rec = serve(http.MethodPost, "/api/admin/notifications", adminToken, []byte(`{"user_id": 9999, "message": "hi"}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("newest first", func(t *testing.T) {
		rec := serve(http.MethodGet, "/api/notifications", token)
		var notifs []notification.Notification
		unmarshal(t, rec, &notifs)
		require.Len(t, notifs, 2)
		assert.Equal(t, "Reminder 2", notifs[0].Message)
		assert.Equal(t, 2, unread(t))
	})

	require.Len(t, ids, 2)
	tests := []httpTest{
		{
			name: "unknown action", body: []byte(`{"action": "archive"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"action": "action is not equal to mark_read"}),
		},
		{
			name: "foreign notification", token: adminToken, body: []byte(fmt.Sprintf(`{"action": "mark_read", "id": %d}`, ids[0])),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "notification not found"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/notifications"
		if tests[i].token == "" {
			tests[i].token = token
		}
	}
	runHTTPTests(t, tests)

	t.Run("mark one then all", func(t *testing.T) {
		rec := serve(http.MethodPost, "/api/notifications", token, []byte(fmt.Sprintf(`{"action": "mark_read", "id": %d}`, ids[0])))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 1, unread(t))

		rec = serve(http.MethodPost, "/api/notifications", token, []byte(`{"action": "mark_read"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 0, unread(t))
	})
}
