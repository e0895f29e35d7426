package sqlxrepos

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/course"
	"github.com/trezcool/unisphere/core/finance"
	"github.com/trezcool/unisphere/core/schedule"
	"github.com/trezcool/unisphere/core/user"
)

var ctx = context.Background()

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

func q(query string) string {
	return regexp.QuoteMeta(query)
}

var userCols = []string{"id", "username", "email", "password_hash", "is_admin", "gpa", "created_at"}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()
	usr := user.User{Username: "ada", Email: null.StringFrom("ada@uni.edu"), PasswordHash: []byte("hash"), CreatedAt: now}

	mock.ExpectQuery(q("INSERT INTO users")).
		WithArgs("ada", "ada@uni.edu", []byte("hash"), false, 0.0, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	got, err := repo.CreateUser(ctx, usr)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)

	mock.ExpectQuery(q("INSERT INTO users")).WillReturnError(&pq.Error{Code: uniqueViolation})
	_, err = repo.CreateUser(ctx, usr)
	cerr, ok := err.(*core.ConflictError)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, user.ErrUsernameExists, cerr.Err)
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(q("SELECT " + userColumns + " FROM users WHERE username = $1")).
		WithArgs("ada").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "ada", nil, []byte("hash"), true, 3.5, now))
	usr, err := repo.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, user.User{ID: 1, Username: "ada", PasswordHash: []byte("hash"), IsAdmin: true, GPA: 3.5, CreatedAt: now}, usr)

	mock.ExpectQuery(q("FROM users WHERE username = $1")).WithArgs("ghost").WillReturnRows(sqlmock.NewRows(userCols))
	_, err = repo.GetUserByUsername(ctx, "ghost")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestUserRepository_UpdateUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	usr := user.User{ID: 3, Username: "ada", GPA: 2.5}

	t.Run("keeps password", func(t *testing.T) {
		mock.ExpectExec(q("UPDATE users SET username = $2, email = $3, is_admin = $4, gpa = $5 WHERE id = $1")).
			WithArgs(3, "ada", nil, false, 2.5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(q("FROM users WHERE id = $1")).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(3, "ada", nil, []byte("hash"), false, 2.5, time.Now()))
		got, err := repo.UpdateUser(ctx, usr)
		require.NoError(t, err)
		assert.Equal(t, []byte("hash"), got.PasswordHash)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec(q("UPDATE users")).WillReturnResult(sqlmock.NewResult(0, 0))
		_, err := repo.UpdateUser(ctx, usr)
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(q("DELETE FROM users WHERE id = $1")).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteUser(ctx, 4))

	mock.ExpectExec(q("DELETE FROM users WHERE id = $1")).WithArgs(4).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Equal(t, user.ErrNotFound, repo.DeleteUser(ctx, 4))
}

func TestCourseRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCourseRepository(db)

	mock.ExpectQuery(q("INSERT INTO courses (user_id, title, score, credits) VALUES ($1, $2, $3, $4) RETURNING id")).
		WithArgs(1, "Math", 85, 3.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	c, err := repo.CreateCourse(ctx, course.Course{UserID: 1, Title: "Math", Score: 85, Credits: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, c.ID)

	mock.ExpectQuery(q("FROM courses WHERE user_id = $1 ORDER BY title, id")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "score", "credits"}).
			AddRow(10, 1, "Math", 85, 3.0).
			AddRow(11, 1, "Physics", 95, 4.0))
	courses, err := repo.QueryCourses(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	mock.ExpectExec(q("DELETE FROM courses WHERE id = $1 AND user_id = $2")).
		WithArgs(10, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Equal(t, course.ErrNotFound, repo.DeleteCourse(ctx, 2, 10))
}

func TestFinanceRepository_CreateFinancialEntry(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFinanceRepository(db)
	amount, _ := decimal.NewFromString("12.30")

	mock.ExpectQuery(q("INSERT INTO financial_entries (user_id, category, amount, month_year) VALUES ($1, $2, $3, $4)")).
		WithArgs(1, "Rent", amount, "2026-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "amount", "month_year"}).
			AddRow(3, 1, "Rent", "12.30", "2026-10"))
	e, err := repo.CreateFinancialEntry(ctx, finance.FinancialEntry{UserID: 1, Category: "Rent", Amount: amount, MonthYear: "2026-10"})
	require.NoError(t, err)
	assert.Equal(t, 3, e.ID)
	assert.Equal(t, "12.3", e.Amount.String())

	mock.ExpectQuery(q("INSERT INTO financial_entries")).WillReturnError(&pq.Error{Code: uniqueViolation})
	_, err = repo.CreateFinancialEntry(ctx, finance.FinancialEntry{UserID: 1, Category: "Rent", Amount: amount, MonthYear: "2026-10"})
	cerr, ok := err.(*core.ConflictError)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, finance.ErrCategoryExists, cerr.Err)
}

func TestScheduleRepository_OwnerScope(t *testing.T) {
	db, mock := newMock(t)
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(q("FROM tests t JOIN users u ON u.id = t.user_id WHERE t.user_id = $1 ORDER BY t.due_date, t.id")).
		WithArgs(0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	tests, err := repo.QueryTests(ctx, schedule.Filter{})
	require.NoError(t, err)
	assert.Empty(t, tests)

	mock.ExpectQuery(q("FROM tests t JOIN users u ON u.id = t.user_id ORDER BY t.due_date, t.id")).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.QueryTests(ctx, schedule.Filter{AllUsers: true})
	require.NoError(t, err)

	mock.ExpectExec(q("DELETE FROM timetable_entries WHERE id = $1 AND user_id = $2")).
		WithArgs(5, 0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Equal(t, schedule.ErrTimetableEntryNotFound, repo.DeleteTimetableEntry(ctx, 5, 0))

	mock.ExpectExec(q("DELETE FROM timetable_entries WHERE id = $1")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteAnyTimetableEntry(ctx, 5))
}

func Test_getExec(t *testing.T) {
	db, mock := newMock(t)
	repo := repository{db: db}

	assert.Equal(t, sqlx.ExtContext(db), repo.getExec())
	assert.Equal(t, sqlx.ExtContext(db), repo.getExec(nil))

	mock.ExpectBegin()
	mock.ExpectRollback()
	tx, err := db.Beginx()
	require.NoError(t, err)
	assert.Equal(t, sqlx.ExtContext(tx), repo.getExec(tx))
	require.NoError(t, tx.Rollback())
}

func Test_isUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: uniqueViolation}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(driver.ErrBadConn))
}
