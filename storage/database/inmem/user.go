package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, u := range repo.db.t.users {
		if u.Username == usr.Username {
			return user.User{}, core.NewConflictError(user.ErrUsernameExists,
				core.FieldError{Field: "username", Error: user.ErrUsernameExists.Error()})
		}
	}
	usr.ID = repo.db.nextPK()
	repo.db.t.users[usr.ID] = usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id int, _ ...core.DBExecutor) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if usr, ok := repo.db.t.users[id]; ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(_ context.Context, username string, _ ...core.DBExecutor) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, usr := range repo.db.t.users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.t.users))
	for _, u := range repo.db.t.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (repo *userRepository) QueryAllUsers(_ context.Context, _ ...core.DBExecutor) ([]user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *userRepository) QueryPeers(_ context.Context, excludedID int, _ ...core.DBExecutor) ([]user.Peer, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	peers := make([]user.Peer, 0, len(repo.db.t.users))
	for _, u := range repo.query() {
		if u.ID != excludedID {
			peers = append(peers, user.Peer{ID: u.ID, Username: u.Username})
		}
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].Username < peers[j].Username })
	return peers, nil
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origUsr, ok := repo.db.t.users[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	for _, u := range repo.db.t.users {
		if u.Username == usr.Username && u.ID != usr.ID {
			return user.User{}, core.NewConflictError(user.ErrUsernameExists,
				core.FieldError{Field: "username", Error: user.ErrUsernameExists.Error()})
		}
	}
	if usr.PasswordHash == nil {
		usr.PasswordHash = origUsr.PasswordHash
	}
	usr.CreatedAt = origUsr.CreatedAt
	repo.db.t.users[usr.ID] = usr
	journal(exec, func() { repo.db.t.users[origUsr.ID] = origUsr })
	return usr, nil
}

func (repo *userRepository) SetUserGPA(_ context.Context, id int, gpa float64, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	usr, ok := repo.db.t.users[id]
	if !ok {
		return user.ErrNotFound
	}
	prev := usr.GPA
	usr.GPA = gpa
	repo.db.t.users[id] = usr
	journal(exec, func() {
		if u, ok := repo.db.t.users[id]; ok {
			u.GPA = prev
			repo.db.t.users[id] = u
		}
	})
	return nil
}

func (repo *userRepository) DeleteUser(_ context.Context, id int, _ ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.t.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(repo.db.t.users, id)
	repo.db.t.deleteOwnedBy(id)
	return nil
}
