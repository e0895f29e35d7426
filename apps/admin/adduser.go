package main

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByUsername(ctx, uname)
	exists := err == nil
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Username:  uname,
			CreatedAt: time.Now().UTC(),
		}
	}
	if email != "" {
		usr.Email = null.StringFrom(email)
	}
	usr.IsAdmin = isAdmin
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}

	if exists {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	}
	return err
}
