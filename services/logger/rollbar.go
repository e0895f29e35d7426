package logsvc

import (
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/unisphere/core"
)

// RollbarLogger reports to Rollbar and mirrors every entry to a standard logger.
// Args may hold an error, extra fields (map[string]interface{}) and the acting core.Identity.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// splitActor pulls the first authenticated identity out of args.
func splitActor(args []interface{}) (actor core.Identity, rest []interface{}) {
	rest = make([]interface{}, 0, len(args))
	for _, arg := range args {
		id, ok := arg.(core.Identity)
		if !ok {
			rest = append(rest, arg)
			continue
		}
		if actor.ID == 0 {
			actor = id
		}
	}
	return actor, rest
}

func (l RollbarLogger) log(report func(...interface{}), level, msg string, args []interface{}) {
	actor, rest := splitActor(args)
	if actor.ID != 0 {
		rollbar.SetPerson(strconv.Itoa(actor.ID), actor.Username, "")
	} else {
		rollbar.ClearPerson()
	}
	report(append([]interface{}{msg}, rest...)...)

	l.std.Printf("[%s] %s", level, msg)
	for _, arg := range rest {
		l.std.Printf("\t%+v", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(rollbar.Debug, "DEBUG", msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(rollbar.Info, "INFO", msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(rollbar.Warning, "WARN", msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(rollbar.Error, "ERROR", msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.Critical, "FATAL", msg, args)
	l.std.Fatal(msg)
}
