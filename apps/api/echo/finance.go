package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/finance"
)

type financeApi struct {
	svc *finance.Service
}

func registerFinanceAPI(g *echo.Group, svc *finance.Service) {
	api := financeApi{svc: svc}

	g.GET("/finance", api.currentMonth)
	g.POST("/finance", api.replaceMonth)
}

func (api *financeApi) currentMonth(ctx echo.Context) error {
	entries, err := api.svc.CurrentMonth(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *financeApi) replaceMonth(ctx echo.Context) error {
	var data finance.MonthBudget
	if err := bindJSON(ctx, &data, "MonthBudget"); err != nil {
		return err
	}
	entries, err := api.svc.ReplaceMonth(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}
