package finance

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
)

type (
	Repository interface {
		QueryFinancialEntries(ctx context.Context, userID int, monthYear string, exec ...core.DBExecutor) ([]FinancialEntry, error)
		DeleteFinancialEntries(ctx context.Context, userID int, monthYear string, exec ...core.DBExecutor) error
		CreateFinancialEntry(ctx context.Context, e FinancialEntry, exec ...core.DBExecutor) (FinancialEntry, error)
	}

	Service struct {
		tx       core.Transactor
		repo     Repository
		validate *validator.Validate
		now      func() time.Time
	}
)

func NewService(tx core.Transactor, repo Repository, validate *validator.Validate) *Service {
	return &Service{
		tx:       tx,
		repo:     repo,
		validate: validate,
		now:      time.Now,
	}
}

// CurrentMonth returns the caller's entries of the current UTC month.
func (svc *Service) CurrentMonth(ctx context.Context, actor core.Identity) ([]FinancialEntry, error) {
	entries, err := svc.repo.QueryFinancialEntries(ctx, actor.ID, core.MonthYear(svc.now()))
	if err != nil {
		return nil, errors.Wrap(err, "querying financial entries")
	}
	return entries, nil
}

// ReplaceMonth atomically swaps the caller's current-month entries for mb.
// Nothing is written unless every entry is valid.
func (svc *Service) ReplaceMonth(ctx context.Context, actor core.Identity, mb MonthBudget) ([]FinancialEntry, error) {
	amounts, err := mb.Validate(svc.validate)
	if err != nil {
		return nil, err
	}

	monthYear := core.MonthYear(svc.now())
	entries := make([]FinancialEntry, 0, len(mb.Entries))
	err = svc.tx.WithinTx(ctx, func(exec core.DBExecutor) error {
		if err := svc.repo.DeleteFinancialEntries(ctx, actor.ID, monthYear, exec); err != nil {
			return errors.Wrap(err, "clearing month")
		}
		for i, in := range mb.Entries {
			e, err := svc.repo.CreateFinancialEntry(ctx, FinancialEntry{
				UserID:    actor.ID,
				Category:  in.Category,
				Amount:    amounts[i],
				MonthYear: monthYear,
			}, exec)
			if err != nil {
				return errors.Wrap(err, "creating financial entry")
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
