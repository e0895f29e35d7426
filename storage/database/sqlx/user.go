package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

const userColumns = "id, username, email, password_hash, is_admin, gpa, created_at"

type userRepository struct {
	repository
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{repository{db: db}}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &usr.ID,
		`INSERT INTO users (username, email, password_hash, is_admin, gpa, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		usr.Username, usr.Email, usr.PasswordHash, usr.IsAdmin, usr.GPA, usr.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, conflict(user.ErrUsernameExists, "username")
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (user.User, error) {
	var usr user.User
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &usr, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return usr, trapNoRowsErr(err, user.ErrNotFound)
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string, exec ...core.DBExecutor) (user.User, error) {
	var usr user.User
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &usr, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return usr, trapNoRowsErr(err, user.ErrNotFound)
}

func (repo *userRepository) QueryAllUsers(ctx context.Context, exec ...core.DBExecutor) ([]user.User, error) {
	users := make([]user.User, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &users, "SELECT "+userColumns+" FROM users ORDER BY id")
	return users, err
}

func (repo *userRepository) QueryPeers(ctx context.Context, excludedID int, exec ...core.DBExecutor) ([]user.Peer, error) {
	peers := make([]user.Peer, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &peers,
		"SELECT id, username FROM users WHERE id <> $1 ORDER BY username", excludedID)
	return peers, err
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	ext := repo.getExec(exec...)
	var (
		res sql.Result
		err error
	)
	if usr.PasswordHash != nil {
		res, err = ext.ExecContext(ctx,
			"UPDATE users SET username = $2, email = $3, is_admin = $4, gpa = $5, password_hash = $6 WHERE id = $1",
			usr.ID, usr.Username, usr.Email, usr.IsAdmin, usr.GPA, usr.PasswordHash)
	} else {
		res, err = ext.ExecContext(ctx,
			"UPDATE users SET username = $2, email = $3, is_admin = $4, gpa = $5 WHERE id = $1",
			usr.ID, usr.Username, usr.Email, usr.IsAdmin, usr.GPA)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, conflict(user.ErrUsernameExists, "username")
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if err = checkAffected(res, user.ErrNotFound); err != nil {
		return user.User{}, err
	}
	return repo.GetUserByID(ctx, usr.ID, exec...)
}

func (repo *userRepository) SetUserGPA(ctx context.Context, id int, gpa float64, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec...).ExecContext(ctx, "UPDATE users SET gpa = $2 WHERE id = $1", id, gpa)
	if err != nil {
		return errors.Wrap(err, "updating gpa")
	}
	return checkAffected(res, user.ErrNotFound)
}

// DeleteUser relies on ON DELETE CASCADE to remove the user's rows.
func (repo *userRepository) DeleteUser(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec...).ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return checkAffected(res, user.ErrNotFound)
}
