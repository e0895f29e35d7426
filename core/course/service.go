package course

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

var ErrNotFound = core.NewNotFoundError("course")

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course, exec ...core.DBExecutor) (Course, error)
		// QueryCourses returns the user's courses ordered by title.
		QueryCourses(ctx context.Context, userID int, exec ...core.DBExecutor) ([]Course, error)
		// DeleteCourse deletes the course only if it belongs to userID, ErrNotFound otherwise.
		DeleteCourse(ctx context.Context, userID, id int, exec ...core.DBExecutor) error
	}

	// UserStore persists the derived GPA on the owner's record.
	UserStore interface {
		GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (user.User, error)
		SetUserGPA(ctx context.Context, id int, gpa float64, exec ...core.DBExecutor) error
	}

	Notifier interface {
		Notify(ctx context.Context, userID int, msg string, exec ...core.DBExecutor) error
	}

	Service struct {
		tx       core.Transactor
		repo     Repository
		users    UserStore
		notifier Notifier
		validate *validator.Validate
	}
)

func NewService(tx core.Transactor, repo Repository, users UserStore, notifier Notifier, validate *validator.Validate) *Service {
	return &Service{
		tx:       tx,
		repo:     repo,
		users:    users,
		notifier: notifier,
		validate: validate,
	}
}

func (svc *Service) Query(ctx context.Context, actor core.Identity) ([]Course, error) {
	courses, err := svc.repo.QueryCourses(ctx, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

// Create adds a course for the caller and recomputes their GPA in the same transaction.
func (svc *Service) Create(ctx context.Context, actor core.Identity, nc NewCourse) (Course, float64, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, 0, err
	}

	var (
		c   Course
		gpa float64
	)
	err := svc.tx.WithinTx(ctx, func(exec core.DBExecutor) error {
		var err error
		c, err = svc.repo.CreateCourse(ctx, Course{
			UserID:  actor.ID,
			Title:   nc.Title,
			Score:   *nc.Score,
			Credits: *nc.Credits,
		}, exec)
		if err != nil {
			return errors.Wrap(err, "creating course")
		}
		gpa, err = svc.recompute(ctx, actor.ID, exec)
		return err
	})
	if err != nil {
		return Course{}, 0, err
	}
	return c, gpa, nil
}

// Delete removes one of the caller's courses and recomputes their GPA in the same transaction.
func (svc *Service) Delete(ctx context.Context, actor core.Identity, id int) (float64, error) {
	var gpa float64
	err := svc.tx.WithinTx(ctx, func(exec core.DBExecutor) error {
		if err := svc.repo.DeleteCourse(ctx, actor.ID, id, exec); err != nil {
			return err
		}
		var err error
		gpa, err = svc.recompute(ctx, actor.ID, exec)
		return err
	})
	if err != nil {
		return 0, err
	}
	return gpa, nil
}

// recompute persists the GPA derived from the user's current courses and notifies them when it moved.
func (svc *Service) recompute(ctx context.Context, userID int, exec core.DBExecutor) (float64, error) {
	usr, err := svc.users.GetUserByID(ctx, userID, exec)
	if err != nil {
		return 0, errors.Wrap(err, "finding course owner")
	}
	courses, err := svc.repo.QueryCourses(ctx, userID, exec)
	if err != nil {
		return 0, errors.Wrap(err, "querying courses")
	}

	gpa := ComputeGPA(courses)
	if err = svc.users.SetUserGPA(ctx, userID, gpa, exec); err != nil {
		return 0, errors.Wrap(err, "saving gpa")
	}
	if gpa != usr.GPA && svc.notifier != nil {
		if err = svc.notifier.Notify(ctx, userID, fmt.Sprintf("Your GPA is now %.2f.", gpa), exec); err != nil {
			return 0, errors.Wrap(err, "notifying gpa change")
		}
	}
	return gpa, nil
}
