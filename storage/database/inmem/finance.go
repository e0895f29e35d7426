package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/finance"
)

type financeRepository struct {
	db *DB
}

var _ finance.Repository = (*financeRepository)(nil)

func NewFinanceRepository(db *DB) finance.Repository {
	return &financeRepository{db: db}
}

func (repo *financeRepository) QueryFinancialEntries(_ context.Context, userID int, monthYear string, _ ...core.DBExecutor) ([]finance.FinancialEntry, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	entries := make([]finance.FinancialEntry, 0)
	for _, e := range repo.db.t.finances {
		if e.UserID == userID && e.MonthYear == monthYear {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Category < entries[j].Category })
	return entries, nil
}

func (repo *financeRepository) DeleteFinancialEntries(_ context.Context, userID int, monthYear string, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for id, e := range repo.db.t.finances {
		if e.UserID == userID && e.MonthYear == monthYear {
			delete(repo.db.t.finances, id)
			id, e := id, e
			journal(exec, func() { repo.db.t.finances[id] = e })
		}
	}
	return nil
}

func (repo *financeRepository) CreateFinancialEntry(_ context.Context, e finance.FinancialEntry, exec ...core.DBExecutor) (finance.FinancialEntry, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, other := range repo.db.t.finances {
		if other.UserID == e.UserID && other.MonthYear == e.MonthYear && other.Category == e.Category {
			return finance.FinancialEntry{}, core.NewConflictError(finance.ErrCategoryExists,
				core.FieldError{Field: "category", Error: finance.ErrCategoryExists.Error()})
		}
	}
	e.ID = repo.db.nextPK()
	repo.db.t.finances[e.ID] = e
	journal(exec, func() { delete(repo.db.t.finances, e.ID) })
	return e, nil
}
