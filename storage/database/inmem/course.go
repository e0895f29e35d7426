package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course, exec ...core.DBExecutor) (course.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c.ID = repo.db.nextPK()
	repo.db.t.courses[c.ID] = c
	journal(exec, func() { delete(repo.db.t.courses, c.ID) })
	return c, nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, userID int, _ ...core.DBExecutor) ([]course.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	courses := make([]course.Course, 0)
	for _, c := range repo.db.t.courses {
		if c.UserID == userID {
			courses = append(courses, c)
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Title == courses[j].Title {
			return courses[i].ID < courses[j].ID
		}
		return courses[i].Title < courses[j].Title
	})
	return courses, nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, userID, id int, exec ...core.DBExecutor) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c, ok := repo.db.t.courses[id]
	if !ok || c.UserID != userID {
		return course.ErrNotFound
	}
	delete(repo.db.t.courses, id)
	journal(exec, func() { repo.db.t.courses[id] = c })
	return nil
}
