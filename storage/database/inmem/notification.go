package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/notification"
)

type notificationRepository struct {
	db *DB
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) CreateNotification(_ context.Context, n notification.Notification, exec ...core.DBExecutor) (notification.Notification, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	n.ID = repo.db.nextPK()
	repo.db.t.notifications[n.ID] = n
	journal(exec, func() { delete(repo.db.t.notifications, n.ID) })
	return n, nil
}

func (repo *notificationRepository) QueryRecentNotifications(_ context.Context, userID, limit int, _ ...core.DBExecutor) ([]notification.Notification, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	notifs := make([]notification.Notification, 0)
	for _, n := range repo.db.t.notifications {
		if n.UserID == userID {
			notifs = append(notifs, n)
		}
	}
	sort.Slice(notifs, func(i, j int) bool {
		if notifs[i].Timestamp.Equal(notifs[j].Timestamp) {
			return notifs[i].ID > notifs[j].ID
		}
		return notifs[i].Timestamp.After(notifs[j].Timestamp)
	})
	if limit > 0 && len(notifs) > limit {
		notifs = notifs[:limit]
	}
	return notifs, nil
}

func (repo *notificationRepository) CountUnreadNotifications(_ context.Context, userID int, _ ...core.DBExecutor) (int, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var count int
	for _, n := range repo.db.t.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (repo *notificationRepository) MarkNotificationRead(_ context.Context, userID, id int, _ ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	n, ok := repo.db.t.notifications[id]
	if !ok || n.UserID != userID {
		return notification.ErrNotFound
	}
	n.IsRead = true
	repo.db.t.notifications[id] = n
	return nil
}

func (repo *notificationRepository) MarkAllNotificationsRead(_ context.Context, userID int, _ ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for id, n := range repo.db.t.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			repo.db.t.notifications[id] = n
		}
	}
	return nil
}
