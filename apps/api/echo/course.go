package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/course"
)

type (
	courseApi struct {
		svc *course.Service
	}

	CourseCreatedResponse struct {
		Course course.Course `json:"course"`
		GPA    float64       `json:"gpa"`
	}

	GPAResponse struct {
		GPA float64 `json:"gpa"`
	}
)

func registerCourseAPI(g *echo.Group, svc *course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.DELETE("/:id", api.destroy)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.Query(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := bindJSON(ctx, &data, "NewCourse"); err != nil {
		return err
	}
	c, gpa, err := api.svc.Create(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, CourseCreatedResponse{Course: c, GPA: gpa})
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	gpa, err := api.svc.Delete(ctx.Request().Context(), getContextIdentity(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, GPAResponse{GPA: gpa})
}
