package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/wellness"
)

type (
	wellnessApi struct {
		svc *wellness.Service
	}

	HydrationLoggedResponse struct {
		Entry      wellness.HydrationEntry `json:"entry"`
		TotalToday int                     `json:"total_today"`
		GoalML     int                     `json:"goal_ml"`
	}
)

func registerWellnessAPI(g *echo.Group, svc *wellness.Service) {
	api := wellnessApi{svc: svc}

	g.GET("/hydration", api.hydration)
	g.POST("/hydration", api.logHydration)
	g.GET("/mood", api.moodHistory)
	g.POST("/mood", api.logMood)
	g.GET("/study_session", api.studySessions)
	g.POST("/study_session", api.logStudySession)
}

func (api *wellnessApi) hydration(ctx echo.Context) error {
	summary, err := api.svc.HydrationToday(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *wellnessApi) logHydration(ctx echo.Context) error {
	var data wellness.NewHydrationEntry
	if err := bindJSON(ctx, &data, "NewHydrationEntry"); err != nil {
		return err
	}
	e, summary, err := api.svc.LogHydration(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, HydrationLoggedResponse{
		Entry:      e,
		TotalToday: summary.TotalToday,
		GoalML:     summary.GoalML,
	})
}

func (api *wellnessApi) moodHistory(ctx echo.Context) error {
	entries, err := api.svc.MoodHistory(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *wellnessApi) logMood(ctx echo.Context) error {
	var data wellness.NewMoodEntry
	if err := bindJSON(ctx, &data, "NewMoodEntry"); err != nil {
		return err
	}
	e, err := api.svc.LogMood(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *wellnessApi) studySessions(ctx echo.Context) error {
	sessions, err := api.svc.RecentStudySessions(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *wellnessApi) logStudySession(ctx echo.Context) error {
	var data wellness.NewStudySession
	if err := bindJSON(ctx, &data, "NewStudySession"); err != nil {
		return err
	}
	s, err := api.svc.LogStudySession(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, s)
}
