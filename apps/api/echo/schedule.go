package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/schedule"
)

type scheduleApi struct {
	svc *schedule.Service
}

func registerScheduleAPI(g, admin *echo.Group, svc *schedule.Service) {
	api := scheduleApi{svc: svc}

	g.GET("/timetable", api.timetable)
	g.POST("/timetable", api.addTimetableEntry)
	g.DELETE("/timetable/:id", api.deleteTimetableEntry)
	g.GET("/tests", api.tests)
	g.GET("/appointments", api.appointments)
	g.POST("/appointments", api.bookAppointment)
	g.DELETE("/appointments/:id", api.cancelAppointment)

	admin.GET("/timetable", api.adminTimetable)
	admin.POST("/timetable", api.adminAddTimetableEntry)
	admin.DELETE("/timetable/:id", api.adminDeleteTimetableEntry)
	admin.GET("/tests", api.adminTests)
	admin.POST("/tests", api.adminAddTest)
	admin.DELETE("/tests/:id", api.adminDeleteTest)
}

// Timetable

func (api *scheduleApi) timetable(ctx echo.Context) error {
	entries, err := api.svc.Timetable(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *scheduleApi) addTimetableEntry(ctx echo.Context) error {
	var data schedule.NewTimetableEntry
	if err := bindJSON(ctx, &data, "NewTimetableEntry"); err != nil {
		return err
	}
	e, err := api.svc.AddTimetableEntry(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *scheduleApi) deleteTimetableEntry(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteTimetableEntry(ctx.Request().Context(), getContextIdentity(ctx), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Tests & Appointments

func (api *scheduleApi) tests(ctx echo.Context) error {
	tests, err := api.svc.Tests(ctx.Request().Context(), getContextIdentity(ctx), queryFlag(ctx, "upcoming"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *scheduleApi) appointments(ctx echo.Context) error {
	appts, err := api.svc.Appointments(ctx.Request().Context(), getContextIdentity(ctx), queryFlag(ctx, "upcoming"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, appts)
}

func (api *scheduleApi) bookAppointment(ctx echo.Context) error {
	var data schedule.NewAppointment
	if err := bindJSON(ctx, &data, "NewAppointment"); err != nil {
		return err
	}
	a, err := api.svc.BookAppointment(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *scheduleApi) cancelAppointment(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.CancelAppointment(ctx.Request().Context(), getContextIdentity(ctx), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Administration

func (api *scheduleApi) adminTimetable(ctx echo.Context) error {
	entries, err := api.svc.AdminTimetable(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *scheduleApi) adminAddTimetableEntry(ctx echo.Context) error {
	var data schedule.NewTimetableEntry
	if err := bindJSON(ctx, &data, "NewTimetableEntry"); err != nil {
		return err
	}
	e, err := api.svc.AdminAddTimetableEntry(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *scheduleApi) adminDeleteTimetableEntry(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.AdminDeleteTimetableEntry(ctx.Request().Context(), getContextIdentity(ctx), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *scheduleApi) adminTests(ctx echo.Context) error {
	tests, err := api.svc.AdminTests(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *scheduleApi) adminAddTest(ctx echo.Context) error {
	var data schedule.NewTest
	if err := bindJSON(ctx, &data, "NewTest"); err != nil {
		return err
	}
	t, err := api.svc.AdminAddTest(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *scheduleApi) adminDeleteTest(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.AdminDeleteTest(ctx.Request().Context(), getContextIdentity(ctx), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
