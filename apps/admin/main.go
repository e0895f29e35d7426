package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/unisphere/core"
	logsvc "github.com/trezcool/unisphere/services/logger"
	"github.com/trezcool/unisphere/storage/database"
	inmemdb "github.com/trezcool/unisphere/storage/database/inmem"
	sqlxrepos "github.com/trezcool/unisphere/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()

	rollbarLogger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	rollbarLogger.Enable(!conf.Debug)
	logger = rollbarLogger

	cli := commandLine{}
	if conf.Database.InMemory {
		logger.Warn("using the in-memory store: changes are lost on exit")
		cli.usrRepo = inmemdb.NewUserRepository(inmemdb.Open())
	} else {
		// set up DB
		db, err := database.Open(conf)
		errAndDie(err)
		defer db.Close()
		errAndDie(db.Ping())

		cli.db = db.DB
		cli.usrRepo = sqlxrepos.NewUserRepository(db)
	}

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
