package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/unisphere/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("user")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = core.NewUnauthenticatedError("invalid credentials")
	ErrUseAdminLogin      = core.NewForbiddenError("use the dedicated admin login page")
	ErrNoSuicide          = core.NewForbiddenError("you cannot delete your own account")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (User, error)
		GetUserByUsername(ctx context.Context, username string, exec ...core.DBExecutor) (User, error)
		QueryAllUsers(ctx context.Context, exec ...core.DBExecutor) ([]User, error)
		QueryPeers(ctx context.Context, excludedID int, exec ...core.DBExecutor) ([]Peer, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		SetUserGPA(ctx context.Context, id int, gpa float64, exec ...core.DBExecutor) error
		DeleteUser(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Signup creates a student account. Usernames are matched exactly (case-sensitive).
func (svc *Service) Signup(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}

	_, err := svc.repo.GetUserByUsername(ctx, nu.Username)
	switch {
	case err == nil:
		return User{}, core.NewConflictError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	case errors.Cause(err) != ErrNotFound:
		return User{}, errors.Wrap(err, "checking username")
	}

	usr := User{
		Username:  nu.Username,
		CreatedAt: time.Now().UTC(),
	}
	if nu.Email != "" {
		usr.Email = null.StringFrom(nu.Email)
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) authenticate(ctx context.Context, creds Credentials) (User, error) {
	if err := creds.Validate(svc.validate); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

// Login authenticates a student. Admin accounts are turned away even with a matching password.
func (svc *Service) Login(ctx context.Context, creds Credentials) (User, error) {
	usr, err := svc.authenticate(ctx, creds)
	if err != nil {
		return User{}, err
	}
	if usr.IsAdmin {
		return User{}, ErrUseAdminLogin
	}
	return usr, nil
}

// AdminLogin authenticates an admin. Non-admins get the same error as a wrong password.
func (svc *Service) AdminLogin(ctx context.Context, creds Credentials) (User, error) {
	usr, err := svc.authenticate(ctx, creds)
	if err != nil {
		return User{}, err
	}
	if !usr.IsAdmin {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

// Resolve maps a session's user ID to the live user. A user that no longer exists yields core.ErrUnauthenticated.
func (svc *Service) Resolve(ctx context.Context, id int) (User, error) {
	if id <= 0 {
		return User{}, core.ErrUnauthenticated
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, core.ErrUnauthenticated
		}
		return User{}, errors.Wrap(err, "finding user by ID")
	}
	return usr, nil
}

func (svc *Service) Me(ctx context.Context, actor core.Identity) (User, error) {
	return svc.Resolve(ctx, actor.ID)
}

// Peers lists every other user, for the community directory.
func (svc *Service) Peers(ctx context.Context, actor core.Identity) ([]Peer, error) {
	peers, err := svc.repo.QueryPeers(ctx, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying peers")
	}
	return peers, nil
}

func (svc *Service) QueryAll(ctx context.Context, actor core.Identity) ([]User, error) {
	if !actor.IsAdmin {
		return nil, core.ErrForbidden
	}
	users, err := svc.repo.QueryAllUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

// Override lets an admin set a user's GPA and role directly.
// The GPA stays overridden until the user's next course change recomputes it.
func (svc *Service) Override(ctx context.Context, actor core.Identity, id int, uu UpdateUser) (User, error) {
	if !actor.IsAdmin {
		return User{}, core.ErrForbidden
	}
	if err := uu.Validate(svc.validate); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if uu.IsEmpty() {
		return usr, nil
	}
	if uu.GPA != nil {
		usr.GPA = *uu.GPA
	}
	if uu.IsAdmin != nil {
		usr.IsAdmin = *uu.IsAdmin
	}
	return svc.repo.UpdateUser(ctx, usr)
}

// Delete removes a user and everything they own. Admins cannot delete themselves.
func (svc *Service) Delete(ctx context.Context, actor core.Identity, id int) error {
	if !actor.IsAdmin {
		return core.ErrForbidden
	}
	if actor.ID == id {
		return ErrNoSuicide
	}
	return svc.repo.DeleteUser(ctx, id)
}
