package dig_container

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/unisphere/apps/api/echo"
	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/community"
	"github.com/trezcool/unisphere/core/course"
	"github.com/trezcool/unisphere/core/dashboard"
	"github.com/trezcool/unisphere/core/finance"
	"github.com/trezcool/unisphere/core/notification"
	"github.com/trezcool/unisphere/core/schedule"
	"github.com/trezcool/unisphere/core/user"
	"github.com/trezcool/unisphere/core/wellness"
	emailsvc "github.com/trezcool/unisphere/services/email"
	logsvc "github.com/trezcool/unisphere/services/logger"
	"github.com/trezcool/unisphere/storage/database"
	inmemdb "github.com/trezcool/unisphere/storage/database/inmem"
	sqlxrepos "github.com/trezcool/unisphere/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Storage groups the repositories of the selected backend. DB is nil when running in memory.
type Storage struct {
	dig.Out
	DB            *sqlx.DB
	Tx            core.Transactor
	Users         user.Repository
	Courses       course.Repository
	Wellness      wellness.Repository
	Schedule      schedule.Repository
	Finance       finance.Repository
	Notifications notification.Repository
	Community     community.Repository
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) Storage {
	if conf.Database.InMemory {
		loggerParam.Logger.Warn("using the in-memory store: data is lost on exit")
		db := inmemdb.Open()
		return Storage{
			Tx:            inmemdb.NewTransactor(db),
			Users:         inmemdb.NewUserRepository(db),
			Courses:       inmemdb.NewCourseRepository(db),
			Wellness:      inmemdb.NewWellnessRepository(db),
			Schedule:      inmemdb.NewScheduleRepository(db),
			Finance:       inmemdb.NewFinanceRepository(db),
			Notifications: inmemdb.NewNotificationRepository(db),
			Community:     inmemdb.NewCommunityRepository(db),
		}
	}

	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db.DB); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return Storage{
		DB:            db,
		Tx:            database.NewTransactor(db),
		Users:         sqlxrepos.NewUserRepository(db),
		Courses:       sqlxrepos.NewCourseRepository(db),
		Wellness:      sqlxrepos.NewWellnessRepository(db),
		Schedule:      sqlxrepos.NewScheduleRepository(db),
		Finance:       sqlxrepos.NewFinanceRepository(db),
		Notifications: sqlxrepos.NewNotificationRepository(db),
		Community:     sqlxrepos.NewCommunityRepository(db),
	}
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate, translator
}

func newCourseService(
	tx core.Transactor,
	repo course.Repository,
	users user.Repository,
	notifs *notification.Service,
	validate *validator.Validate,
) *course.Service {
	return course.NewService(tx, repo, users, notifs, validate)
}

func newScheduleService(repo schedule.Repository, users user.Repository, validate *validator.Validate) *schedule.Service {
	return schedule.NewService(repo, users, validate)
}

func newCommunityService(repo community.Repository, users user.Repository, validate *validator.Validate) *community.Service {
	return community.NewService(repo, users, validate)
}

func newNotificationService(
	conf *core.Config,
	repo notification.Repository,
	users user.Repository,
	mailSvc core.EmailService,
	logger core.Logger,
	validate *validator.Validate,
) *notification.Service {
	return notification.NewService(conf, repo, users, mailSvc, logger, validate)
}

type serverParams struct {
	dig.In
	Conf            *core.Config
	Logger          core.Logger
	Translator      ut.Translator
	UserSvc         *user.Service
	CourseSvc       *course.Service
	WellnessSvc     *wellness.Service
	ScheduleSvc     *schedule.Service
	FinanceSvc      *finance.Service
	NotificationSvc *notification.Service
	CommunitySvc    *community.Service
	DashboardSvc    *dashboard.Service
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Translator:      p.Translator,
		UserSvc:         p.UserSvc,
		CourseSvc:       p.CourseSvc,
		WellnessSvc:     p.WellnessSvc,
		ScheduleSvc:     p.ScheduleSvc,
		FinanceSvc:      p.FinanceSvc,
		NotificationSvc: p.NotificationSvc,
		CommunitySvc:    p.CommunitySvc,
		DashboardSvc:    p.DashboardSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newEmailService))
	must(c.Provide(newValidator))
	must(c.Provide(user.NewService))
	must(c.Provide(newNotificationService))
	must(c.Provide(newCourseService))
	must(c.Provide(wellness.NewService))
	must(c.Provide(newScheduleService))
	must(c.Provide(finance.NewService))
	must(c.Provide(newCommunityService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
