package community

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/unisphere/core"
)

const chatHistoryLimit = 50

type Post struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"` // UTC
	CommentCount int       `json:"comment_count" db:"comment_count"`
}

type Comment struct {
	ID        int       `json:"id" db:"id"`
	PostID    int       `json:"post_id" db:"post_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Content   string    `json:"content" db:"content"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"` // UTC
}

// DirectMessage content is stored exactly as the client encrypted it.
type DirectMessage struct {
	ID               int       `json:"id" db:"id"`
	SenderID         int       `json:"sender_id" db:"sender_id"`
	SenderUsername   string    `json:"sender_username" db:"sender_username"`
	ReceiverID       int       `json:"receiver_id" db:"receiver_id"`
	ContentEncrypted string    `json:"content_encrypted" db:"content_encrypted"`
	Timestamp        time.Time `json:"timestamp" db:"timestamp"` // UTC
}

type NewPost struct {
	Title   string `json:"title" validate:"required,notblank,max=255"`
	Content string `json:"content" validate:"required,notblank"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Content = core.CleanString(np.Content)
	return validate.Struct(np)
}

type NewComment struct {
	Content string `json:"content" validate:"required,notblank"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Content = core.CleanString(nc.Content)
	return validate.Struct(nc)
}

type NewMessage struct {
	ContentEncrypted string `json:"content_encrypted" validate:"required,notblank"`
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	return validate.Struct(nm)
}
