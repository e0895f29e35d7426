package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/notification"
)

type (
	notificationApi struct {
		svc *notification.Service
	}

	UnreadCountResponse struct {
		UnreadCount int `json:"unread_count"`
	}
)

func registerNotificationAPI(g, admin *echo.Group, svc *notification.Service) {
	api := notificationApi{svc: svc}

	g.GET("/notifications", api.query)
	g.GET("/notifications/unread", api.unreadCount)
	g.POST("/notifications", api.markRead)

	admin.POST("/notifications", api.send)
}

func (api *notificationApi) query(ctx echo.Context) error {
	notifs, err := api.svc.QueryRecent(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *notificationApi) unreadCount(ctx echo.Context) error {
	count, err := api.svc.UnreadCount(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, UnreadCountResponse{UnreadCount: count})
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	var data notification.MarkRead
	if err := bindJSON(ctx, &data, "MarkRead"); err != nil {
		return err
	}
	if err := api.svc.MarkRead(ctx.Request().Context(), getContextIdentity(ctx), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "marked as read"})
}

func (api *notificationApi) send(ctx echo.Context) error {
	var data notification.NewNotification
	if err := bindJSON(ctx, &data, "NewNotification"); err != nil {
		return err
	}
	n, err := api.svc.Send(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, n)
}
