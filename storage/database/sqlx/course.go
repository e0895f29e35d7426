package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/course"
)

type courseRepository struct {
	repository
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{repository{db: db}}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &c.ID,
		"INSERT INTO courses (user_id, title, score, credits) VALUES ($1, $2, $3, $4) RETURNING id",
		c.UserID, c.Title, c.Score, c.Credits)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, userID int, exec ...core.DBExecutor) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &courses,
		"SELECT id, user_id, title, score, credits FROM courses WHERE user_id = $1 ORDER BY title, id", userID)
	return courses, err
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, userID, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec...).ExecContext(ctx, "DELETE FROM courses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return checkAffected(res, course.ErrNotFound)
}
