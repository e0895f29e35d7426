package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/finance"
)

type financeRepository struct {
	repository
}

var _ finance.Repository = (*financeRepository)(nil)

func NewFinanceRepository(db *sqlx.DB) finance.Repository {
	return &financeRepository{repository{db: db}}
}

func (repo *financeRepository) QueryFinancialEntries(ctx context.Context, userID int, monthYear string, exec ...core.DBExecutor) ([]finance.FinancialEntry, error) {
	entries := make([]finance.FinancialEntry, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &entries,
		`SELECT id, user_id, category, amount, month_year FROM financial_entries
		WHERE user_id = $1 AND month_year = $2 ORDER BY category`, userID, monthYear)
	return entries, err
}

func (repo *financeRepository) DeleteFinancialEntries(ctx context.Context, userID int, monthYear string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec...).ExecContext(ctx,
		"DELETE FROM financial_entries WHERE user_id = $1 AND month_year = $2", userID, monthYear)
	return errors.Wrap(err, "deleting financial entries")
}

func (repo *financeRepository) CreateFinancialEntry(ctx context.Context, e finance.FinancialEntry, exec ...core.DBExecutor) (finance.FinancialEntry, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &e,
		`INSERT INTO financial_entries (user_id, category, amount, month_year) VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, category, amount, month_year`,
		e.UserID, e.Category, e.Amount, e.MonthYear)
	if err != nil {
		if isUniqueViolation(err) {
			return finance.FinancialEntry{}, conflict(finance.ErrCategoryExists, "category")
		}
		return finance.FinancialEntry{}, errors.Wrap(err, "inserting financial entry")
	}
	return e, nil
}
