package notification_test

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/notification"
	"github.com/trezcool/unisphere/core/user"
	emailsvc "github.com/trezcool/unisphere/services/email"
	logsvc "github.com/trezcool/unisphere/services/logger"
	inmemdb "github.com/trezcool/unisphere/storage/database/inmem"
	"github.com/trezcool/unisphere/tests"
)

var ctx = context.Background()

type failingMailer struct{}

func (failingMailer) SendMessages(...*core.EmailMessage) error { return errors.New("smtp down") }

func setup(t *testing.T, mailEnabled bool, mailer core.EmailService) (*notification.Service, user.Repository) {
	conf := testutil.NewConfig()
	conf.Notifications.MailEnabled = mailEnabled
	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), conf)
	logger.Enable(false)
	validate, _ := testutil.NewValidator()

	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	svc := notification.NewService(conf, inmemdb.NewNotificationRepository(db), usrRepo, mailer, logger, validate)
	return svc, usrRepo
}

func withEmail(t *testing.T, repo user.Repository, usr user.User, email string) user.User {
	usr.Email = null.StringFrom(email)
	usr, err := repo.UpdateUser(ctx, usr)
	require.NoError(t, err)
	return usr
}

func TestService_Send(t *testing.T) {
	mailer := emailsvc.NewConsoleServiceMock(testutil.NewConfig())
	svc, repo := setup(t, true, mailer)
	admin := testutil.CreateUser(t, repo, "root", "pwd", true).Identity()
	ada := withEmail(t, repo, testutil.CreateUser(t, repo, "ada", "pwd", false), "ada@uni.edu")
	bob := testutil.CreateUser(t, repo, "bob", "pwd", false)

	n, err := svc.Send(ctx, admin, notification.NewNotification{UserID: ada.ID, Message: " Exam moved "})
	require.NoError(t, err)
	assert.Equal(t, "Exam moved", n.Message)
	assert.False(t, n.IsRead)

	_, err = svc.Send(ctx, admin, notification.NewNotification{UserID: bob.ID, Message: "No address"})
	require.NoError(t, err)

	sent := mailer.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@uni.edu", sent[0].To[0].Address)
	assert.Equal(t, "Exam moved", sent[0].Body)

	_, err = svc.Send(ctx, ada.Identity(), notification.NewNotification{UserID: bob.ID, Message: "hi"})
	assert.Equal(t, core.ErrForbidden, err)

	_, err = svc.Send(ctx, admin, notification.NewNotification{UserID: 9999, Message: "hi"})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestService_Send_mailFailureIsLogged(t *testing.T) {
	svc, repo := setup(t, true, failingMailer{})
	admin := testutil.CreateUser(t, repo, "root", "pwd", true).Identity()
	ada := withEmail(t, repo, testutil.CreateUser(t, repo, "ada", "pwd", false), "ada@uni.edu")

	_, err := svc.Send(ctx, admin, notification.NewNotification{UserID: ada.ID, Message: "hello"})
	require.NoError(t, err)

	count, err := svc.UnreadCount(ctx, ada.Identity())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_MarkRead(t *testing.T) {
	svc, repo := setup(t, false, failingMailer{})
	ada := testutil.CreateUser(t, repo, "ada", "pwd", false).Identity()
	bob := testutil.CreateUser(t, repo, "bob", "pwd", false).Identity()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(ctx, ada.ID, fmt.Sprintf("msg %d", i)))
	}
	require.NoError(t, svc.Notify(ctx, bob.ID, "bob's"))

	recent, err := svc.QueryRecent(ctx, ada)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "msg 2", recent[0].Message)

	t.Run("unknown action", func(t *testing.T) {
		assert.Error(t, svc.MarkRead(ctx, ada, notification.MarkRead{Action: "delete"}))
	})

	t.Run("foreign notification", func(t *testing.T) {
		id := recent[0].ID
		assert.Equal(t, notification.ErrNotFound, svc.MarkRead(ctx, bob, notification.MarkRead{Action: "mark_read", ID: &id}))
	})

	t.Run("one then all", func(t *testing.T) {
		id := recent[0].ID
		require.NoError(t, svc.MarkRead(ctx, ada, notification.MarkRead{Action: " MARK_READ ", ID: &id}))
		count, err := svc.UnreadCount(ctx, ada)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		require.NoError(t, svc.MarkRead(ctx, ada, notification.MarkRead{Action: notification.ActionMarkRead}))
		count, err = svc.UnreadCount(ctx, ada)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		count, err = svc.UnreadCount(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
