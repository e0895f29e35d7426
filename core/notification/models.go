package notification

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/unisphere/core"
)

const (
	ActionMarkRead = "mark_read"

	recentLimit = 20
)

type Notification struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"-" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"` // UTC
	IsRead    bool      `json:"is_read" db:"is_read"`
}

// MarkRead marks one notification (ID set) or all of the caller's notifications as read.
type MarkRead struct {
	Action string `json:"action" validate:"required,eq=mark_read"`
	ID     *int   `json:"id" validate:"omitempty,gt=0"`
}

func (mr *MarkRead) Validate(validate *validator.Validate) error {
	mr.Action = core.CleanString(mr.Action, true /* lower */)
	return validate.Struct(mr)
}

// NewNotification is an admin-authored notification for a user.
type NewNotification struct {
	UserID  int    `json:"user_id" validate:"required,gt=0"`
	Message string `json:"message" validate:"required,notblank,max=255"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Message = core.CleanString(nn.Message)
	return validate.Struct(nn)
}
