package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/unisphere/core/community"
	"github.com/trezcool/unisphere/core/user"
)

type communityApi struct {
	svc    *community.Service
	usrSvc *user.Service
}

func registerCommunityAPI(g *echo.Group, svc *community.Service, usrSvc *user.Service) {
	api := communityApi{svc: svc, usrSvc: usrSvc}

	cg := g.Group("/community")
	cg.GET("/posts", api.posts)
	cg.POST("/posts", api.createPost)
	cg.GET("/posts/:id/comments", api.comments)
	cg.POST("/posts/:id/comments", api.addComment)
	cg.GET("/users", api.peers)
	cg.GET("/chat/:id", api.conversation)
	cg.POST("/chat/:id", api.sendMessage)
}

func (api *communityApi) posts(ctx echo.Context) error {
	posts, err := api.svc.Posts(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *communityApi) createPost(ctx echo.Context) error {
	var data community.NewPost
	if err := bindJSON(ctx, &data, "NewPost"); err != nil {
		return err
	}
	p, err := api.svc.CreatePost(ctx.Request().Context(), getContextIdentity(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *communityApi) comments(ctx echo.Context) error {
	postID, err := paramID(ctx)
	if err != nil {
		return err
	}
	comments, err := api.svc.Comments(ctx.Request().Context(), postID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, comments)
}

func (api *communityApi) addComment(ctx echo.Context) error {
	postID, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data community.NewComment
	if err = bindJSON(ctx, &data, "NewComment"); err != nil {
		return err
	}
	c, err := api.svc.AddComment(ctx.Request().Context(), getContextIdentity(ctx), postID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *communityApi) peers(ctx echo.Context) error {
	peers, err := api.usrSvc.Peers(ctx.Request().Context(), getContextIdentity(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, peers)
}

func (api *communityApi) conversation(ctx echo.Context) error {
	peerID, err := paramID(ctx)
	if err != nil {
		return err
	}
	msgs, err := api.svc.Conversation(ctx.Request().Context(), getContextIdentity(ctx), peerID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *communityApi) sendMessage(ctx echo.Context) error {
	peerID, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data community.NewMessage
	if err = bindJSON(ctx, &data, "NewMessage"); err != nil {
		return err
	}
	m, err := api.svc.SendMessage(ctx.Request().Context(), getContextIdentity(ctx), peerID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}
