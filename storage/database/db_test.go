package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/unisphere/core"
)

func TestTransactor_WithinTx(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	tx := NewTransactor(sqlx.NewDb(mockDB, "postgres"))
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM finances").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := tx.WithinTx(ctx, func(exec core.DBExecutor) error {
			_, err := exec.ExecContext(ctx, "DELETE FROM finances")
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		errBoom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := tx.WithinTx(ctx, func(core.DBExecutor) error { return errBoom })
		assert.Equal(t, errBoom, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
