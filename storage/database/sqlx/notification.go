package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/notification"
)

type notificationRepository struct {
	repository
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *sqlx.DB) notification.Repository {
	return &notificationRepository{repository{db: db}}
}

func (repo *notificationRepository) CreateNotification(ctx context.Context, n notification.Notification, exec ...core.DBExecutor) (notification.Notification, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &n.ID,
		"INSERT INTO notifications (user_id, message, timestamp, is_read) VALUES ($1, $2, $3, $4) RETURNING id",
		n.UserID, n.Message, n.Timestamp, n.IsRead)
	if err != nil {
		return notification.Notification{}, errors.Wrap(err, "inserting notification")
	}
	return n, nil
}

func (repo *notificationRepository) QueryRecentNotifications(ctx context.Context, userID, limit int, exec ...core.DBExecutor) ([]notification.Notification, error) {
	notifs := make([]notification.Notification, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &notifs,
		`SELECT id, user_id, message, timestamp, is_read FROM notifications
		WHERE user_id = $1 ORDER BY timestamp DESC, id DESC LIMIT $2`, userID, limit)
	return notifs, err
}

func (repo *notificationRepository) CountUnreadNotifications(ctx context.Context, userID int, exec ...core.DBExecutor) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &count,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read", userID)
	return count, err
}

func (repo *notificationRepository) MarkNotificationRead(ctx context.Context, userID, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec...).ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return errors.Wrap(err, "marking notification read")
	}
	return checkAffected(res, notification.ErrNotFound)
}

func (repo *notificationRepository) MarkAllNotificationsRead(ctx context.Context, userID int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec...).ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read", userID)
	return errors.Wrap(err, "marking notifications read")
}
