package community

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/user"
)

var (
	ErrPostNotFound = core.NewNotFoundError("post")

	errSelfMessage = errors.New("cannot send a message to yourself")
)

type (
	Repository interface {
		CreatePost(ctx context.Context, p Post, exec ...core.DBExecutor) (Post, error)
		// QueryPosts returns every post, newest first, with author username and comment count.
		QueryPosts(ctx context.Context, exec ...core.DBExecutor) ([]Post, error)
		GetPost(ctx context.Context, id int, exec ...core.DBExecutor) (Post, error)

		CreateComment(ctx context.Context, c Comment, exec ...core.DBExecutor) (Comment, error)
		// QueryComments returns the post's comments, oldest first.
		QueryComments(ctx context.Context, postID int, exec ...core.DBExecutor) ([]Comment, error)

		CreateDirectMessage(ctx context.Context, m DirectMessage, exec ...core.DBExecutor) (DirectMessage, error)
		// QueryConversation returns the latest `limit` messages exchanged by the two users, oldest first.
		QueryConversation(ctx context.Context, userID, peerID, limit int, exec ...core.DBExecutor) ([]DirectMessage, error)
	}

	UserFinder interface {
		GetUserByID(ctx context.Context, id int, exec ...core.DBExecutor) (user.User, error)
	}

	Service struct {
		repo     Repository
		users    UserFinder
		validate *validator.Validate
	}
)

func NewService(repo Repository, users UserFinder, validate *validator.Validate) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		validate: validate,
	}
}

// Posts

func (svc *Service) Posts(ctx context.Context) ([]Post, error) {
	posts, err := svc.repo.QueryPosts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying posts")
	}
	return posts, nil
}

func (svc *Service) CreatePost(ctx context.Context, actor core.Identity, np NewPost) (Post, error) {
	if err := np.Validate(svc.validate); err != nil {
		return Post{}, err
	}
	p, err := svc.repo.CreatePost(ctx, Post{
		UserID:    actor.ID,
		Username:  actor.Username,
		Title:     np.Title,
		Content:   np.Content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return Post{}, errors.Wrap(err, "creating post")
	}
	return p, nil
}

// Comments

func (svc *Service) Comments(ctx context.Context, postID int) ([]Comment, error) {
	if _, err := svc.repo.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := svc.repo.QueryComments(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "querying comments")
	}
	return comments, nil
}

func (svc *Service) AddComment(ctx context.Context, actor core.Identity, postID int, nc NewComment) (Comment, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Comment{}, err
	}
	if _, err := svc.repo.GetPost(ctx, postID); err != nil {
		return Comment{}, err
	}
	c, err := svc.repo.CreateComment(ctx, Comment{
		PostID:    postID,
		UserID:    actor.ID,
		Username:  actor.Username,
		Content:   nc.Content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return Comment{}, errors.Wrap(err, "creating comment")
	}
	return c, nil
}

// Direct messages

// Conversation returns the latest messages between the caller and peerID, readable by either participant only.
func (svc *Service) Conversation(ctx context.Context, actor core.Identity, peerID int) ([]DirectMessage, error) {
	if _, err := svc.users.GetUserByID(ctx, peerID); err != nil {
		return nil, err
	}
	msgs, err := svc.repo.QueryConversation(ctx, actor.ID, peerID, chatHistoryLimit)
	if err != nil {
		return nil, errors.Wrap(err, "querying conversation")
	}
	return msgs, nil
}

func (svc *Service) SendMessage(ctx context.Context, actor core.Identity, peerID int, nm NewMessage) (DirectMessage, error) {
	if err := nm.Validate(svc.validate); err != nil {
		return DirectMessage{}, err
	}
	if peerID == actor.ID {
		return DirectMessage{}, core.NewValidationError(errSelfMessage)
	}
	if _, err := svc.users.GetUserByID(ctx, peerID); err != nil {
		return DirectMessage{}, err
	}
	m, err := svc.repo.CreateDirectMessage(ctx, DirectMessage{
		SenderID:         actor.ID,
		SenderUsername:   actor.Username,
		ReceiverID:       peerID,
		ContentEncrypted: nm.ContentEncrypted,
		Timestamp:        time.Now().UTC(),
	})
	if err != nil {
		return DirectMessage{}, errors.Wrap(err, "sending message")
	}
	return m, nil
}
