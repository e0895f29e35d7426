package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

const (
	contextTokenKey    = "userToken"
	contextIdentityKey = "identity"
)

// Claims represents the session claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

func newClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: usr.Username,
		IsAdmin:  usr.IsAdmin,
	}
}

// GenerateToken returns the signed session token of usr.
func GenerateToken(conf *core.Config, usr user.User) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), newClaims(conf, usr))
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// sessionAuth carries the session token in an HttpOnly cookie and resolves it to a live identity.
type sessionAuth struct {
	conf   *core.Config
	usrSvc *user.Service
	jwt    echo.MiddlewareFunc
}

func newSessionAuth(conf *core.Config, usrSvc *user.Service) *sessionAuth {
	return &sessionAuth{
		conf:   conf,
		usrSvc: usrSvc,
		jwt: middleware.JWTWithConfig(middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
			TokenLookup:   "cookie:" + conf.Server.SessionCookieName,
		}),
	}
}

func (a *sessionAuth) login(ctx echo.Context, usr user.User) error {
	token, err := GenerateToken(a.conf, usr)
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     a.conf.Server.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.conf.Server.JWTExpirationDelta),
		HttpOnly: true,
		Secure:   a.conf.Server.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (a *sessionAuth) logout(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     a.conf.Server.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.conf.Server.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionMiddleware resolves the session claims to the live user.
// A session whose user no longer exists is cleared.
func (a *sessionAuth) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(claims.Subject)
		if err != nil {
			a.logout(ctx)
			return core.ErrUnauthenticated
		}

		usr, err := a.usrSvc.Resolve(ctx.Request().Context(), id)
		if err != nil {
			if errors.Cause(err) == core.ErrUnauthenticated {
				a.logout(ctx)
			}
			return err
		}
		ctx.Set(contextIdentityKey, usr.Identity())
		return next(ctx)
	}
}

// adminMiddleware requires the live identity to hold the admin role.
func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !getContextIdentity(ctx).IsAdmin {
			return core.ErrForbidden
		}
		return next(ctx)
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, core.ErrUnauthenticated
}

// getContextIdentity returns the identity bound by sessionMiddleware; anonymous outside the session gate.
func getContextIdentity(ctx echo.Context) core.Identity {
	id, _ := ctx.Get(contextIdentityKey).(core.Identity)
	return id
}
