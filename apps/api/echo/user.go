package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/user"
)

type authApi struct {
	auth *sessionAuth
	svc  *user.Service
}

func registerAuthAPI(g *echo.Group, auth *sessionAuth, svc *user.Service) {
	api := authApi{auth: auth, svc: svc}

	// TODO: rate limit `/login` & `/admin/login`
	g.POST("/signup", api.signup)
	g.POST("/login", api.login)
	g.POST("/admin/login", api.adminLogin)
	g.POST("/logout", api.logout)
}

func (api *authApi) signup(ctx echo.Context) error {
	var data user.NewUser
	if err := bindJSON(ctx, &data, "NewUser"); err != nil {
		return err
	}
	usr, err := api.svc.Signup(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	if err = api.auth.login(ctx, usr); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *authApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := bindJSON(ctx, &data, "Credentials"); err != nil {
		return err
	}
	usr, err := api.svc.Login(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	if err = api.auth.login(ctx, usr); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) adminLogin(ctx echo.Context) error {
	var data user.Credentials
	if err := bindJSON(ctx, &data, "Credentials"); err != nil {
		return err
	}
	usr, err := api.svc.AdminLogin(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	if err = api.auth.login(ctx, usr); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) logout(ctx echo.Context) error {
	api.auth.logout(ctx)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "logged out"})
}

type (
	userApi struct {
		svc *user.Service
	}

	// UserListItem is the admin listing view of a user.
	UserListItem struct {
		ID       int     `json:"id"`
		Username string  `json:"username"`
		IsAdmin  bool    `json:"is_admin"`
		GPA      float64 `json:"gpa"`
	}
)

func registerUserAPI(g, admin *echo.Group, svc *user.Service) {
	api := userApi{svc: svc}

	g.GET("/me", api.me)

	ag := admin.Group("/users")
	ag.GET("", api.query)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := api.svc.Me(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	items := make([]UserListItem, len(users))
	for i, u := range users {
		items[i] = UserListItem{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin, GPA: u.GPA}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *userApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data user.UpdateUser
	if err = bindJSON(ctx, &data, "UpdateUser"); err != nil {
		return err
	}
	usr, err := api.svc.Override(ctx.Request().Context(), getContextIdentity(ctx), id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), getContextIdentity(ctx), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
