package notification

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

var ErrNotFound = core.NewNotFoundError("notification")

type (
	Repository interface {
		CreateNotification(ctx context.Context, n Notification, exec ...core.DBExecutor) (Notification, error)
		// QueryRecentNotifications returns the user's latest notifications, newest first.
		QueryRecentNotifications(ctx context.Context, userID, limit int, exec ...core.DBExecutor) ([]Notification, error)
		CountUnreadNotifications(ctx context.Context, userID int, exec ...core.DBExecutor) (int, error)
		// MarkNotificationRead returns ErrNotFound if the notification does not belong to userID.
		MarkNotificationRead(ctx context.Context, userID, id int, exec ...core.DBExecutor) error
		MarkAllNotificationsRead(ctx context.Context, userID int, exec ...core.DBExecutor) error
	}

	UserFinder interface {
		GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (user.User, error)
	}

	Service struct {
		repo        Repository
		users       UserFinder
		mailSvc     core.EmailService
		mailEnabled bool
		logger      core.Logger
		validate    *validator.Validate
	}
)

func NewService(
	conf *core.Config,
	repo Repository,
	users UserFinder,
	mailSvc core.EmailService,
	logger core.Logger,
	validate *validator.Validate,
) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		mailSvc:     mailSvc,
		mailEnabled: conf.Notifications.MailEnabled,
		logger:      logger,
		validate:    validate,
	}
}

// Notify records an unread notification for userID.
func (svc *Service) Notify(ctx context.Context, userID int, msg string, exec ...core.DBExecutor) error {
	_, err := svc.repo.CreateNotification(ctx, Notification{
		UserID:    userID,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	}, exec...)
	return err
}

func (svc *Service) QueryRecent(ctx context.Context, actor core.Identity) ([]Notification, error) {
	notifs, err := svc.repo.QueryRecentNotifications(ctx, actor.ID, recentLimit)
	if err != nil {
		return nil, errors.Wrap(err, "querying notifications")
	}
	return notifs, nil
}

func (svc *Service) UnreadCount(ctx context.Context, actor core.Identity) (int, error) {
	count, err := svc.repo.CountUnreadNotifications(ctx, actor.ID)
	if err != nil {
		return 0, errors.Wrap(err, "counting unread notifications")
	}
	return count, nil
}

func (svc *Service) MarkRead(ctx context.Context, actor core.Identity, mr MarkRead) error {
	if err := mr.Validate(svc.validate); err != nil {
		return err
	}
	if mr.ID != nil {
		return svc.repo.MarkNotificationRead(ctx, actor.ID, *mr.ID)
	}
	return svc.repo.MarkAllNotificationsRead(ctx, actor.ID)
}

// Send lets an admin notify a user. The message is also emailed when mail is enabled and the user has an address.
func (svc *Service) Send(ctx context.Context, actor core.Identity, nn NewNotification) (Notification, error) {
	if !actor.IsAdmin {
		return Notification{}, core.ErrForbidden
	}
	if err := nn.Validate(svc.validate); err != nil {
		return Notification{}, err
	}

	usr, err := svc.users.GetUserByID(ctx, nn.UserID)
	if err != nil {
		return Notification{}, err
	}
	n, err := svc.repo.CreateNotification(ctx, Notification{
		UserID:    usr.ID,
		Message:   nn.Message,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return Notification{}, errors.Wrap(err, "creating notification")
	}

	if svc.mailEnabled && usr.Email.Valid {
		msg := &core.EmailMessage{
			To:      []mail.Address{{Name: usr.Username, Address: usr.Email.String}},
			Subject: "New notification",
			Body:    n.Message,
		}
		if err = svc.mailSvc.SendMessages(msg); err != nil {
			svc.logger.Error(fmt.Sprintf("emailing notification %d: %v", n.ID, err), err, actor)
		}
	}
	return n, nil
}
