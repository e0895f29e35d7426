package main

import (
	"github.com/trezcool/unisphere/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoSQLDB
	}
	return gooseRunFunc(cli.db, args[0], args[1:]...)
}
