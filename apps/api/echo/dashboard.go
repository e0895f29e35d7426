package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/dashboard"
)

func registerDashboardAPI(g *echo.Group, svc *dashboard.Service) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		d, err := svc.Get(ctx.Request().Context(), getContextIdentity(ctx))
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, d)
	})
}
