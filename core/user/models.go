package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/unisphere/core"
)

type User struct {
	ID           int         `json:"id" db:"id"`
	Username     string      `json:"username" db:"username"`
	Email        null.String `json:"email" db:"email"`
	IsAdmin      bool        `json:"is_admin" db:"is_admin"`
	GPA          float64     `json:"gpa" db:"gpa"`
	PasswordHash []byte      `json:"-" db:"password_hash"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Identity returns the session binding of the user.
func (u User) Identity() core.Identity {
	return core.Identity{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// Peer is the public projection of a user shown to other users.
type Peer struct {
	ID       int    `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
}

// NewUser contains information needed to sign up.
type NewUser struct {
	Username string `json:"username" validate:"required,notblank,max=80"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,notblank"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	return validate.Struct(nu)
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username)
	return validate.Struct(c)
}

// UpdateUser holds the administrative overrides; nil fields are left untouched.
type UpdateUser struct {
	GPA     *float64 `json:"gpa" validate:"omitempty,min=0,max=4"`
	IsAdmin *bool    `json:"is_admin"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	return validate.Struct(uu)
}

func (uu UpdateUser) IsEmpty() bool {
	return uu.GPA == nil && uu.IsAdmin == nil
}
