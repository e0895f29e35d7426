package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/community"
	"github.com/trezcool/unisphere/core/course"
	"github.com/trezcool/unisphere/core/dashboard"
	"github.com/trezcool/unisphere/core/finance"
	"github.com/trezcool/unisphere/core/notification"
	"github.com/trezcool/unisphere/core/schedule"
	"github.com/trezcool/unisphere/core/user"
	"github.com/trezcool/unisphere/core/wellness"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Translator ut.Translator

		UserSvc         *user.Service
		CourseSvc       *course.Service
		WellnessSvc     *wellness.Service
		ScheduleSvc     *schedule.Service
		FinanceSvc      *finance.Service
		NotificationSvc *notification.Service
		CommunitySvc    *community.Service
		DashboardSvc    *dashboard.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		auth     *sessionAuth
		shutdown chan os.Signal
		errors   chan error
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		auth:     newSessionAuth(deps.Conf, deps.UserSvc),
		shutdown: make(chan os.Signal, 1),
		errors:   make(chan error, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	// session endpoints
	registerAuthAPI(s.app.Group(""), s.auth, s.deps.UserSvc)

	// authed endpoints
	api := s.app.Group("/api", s.auth.jwt, s.auth.sessionMiddleware)
	admin := api.Group("/admin", adminMiddleware)

	registerUserAPI(api, admin, s.deps.UserSvc)
	registerCourseAPI(api, s.deps.CourseSvc)
	registerWellnessAPI(api, s.deps.WellnessSvc)
	registerScheduleAPI(api, admin, s.deps.ScheduleSvc)
	registerFinanceAPI(api, s.deps.FinanceSvc)
	registerNotificationAPI(api, admin, s.deps.NotificationSvc)
	registerCommunityAPI(api, s.deps.CommunitySvc, s.deps.UserSvc)
	registerDashboardAPI(api, s.deps.DashboardSvc)
}

// Start blocks until the server stops. Listener failures are reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // shutdown already pending
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Unisphere API!")
}
