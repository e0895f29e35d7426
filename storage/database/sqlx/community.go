package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/community"
)

const postSelect = `SELECT p.id, p.user_id, u.username, p.title, p.content, p.timestamp,
	(SELECT COUNT(*) FROM community_comments c WHERE c.post_id = p.id) AS comment_count
	FROM community_posts p JOIN users u ON u.id = p.user_id`

type communityRepository struct {
	repository
}

var _ community.Repository = (*communityRepository)(nil)

func NewCommunityRepository(db *sqlx.DB) community.Repository {
	return &communityRepository{repository{db: db}}
}

func (repo *communityRepository) CreatePost(ctx context.Context, p community.Post, exec ...core.DBExecutor) (community.Post, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &p.ID,
		"INSERT INTO community_posts (user_id, title, content, timestamp) VALUES ($1, $2, $3, $4) RETURNING id",
		p.UserID, p.Title, p.Content, p.Timestamp)
	if err != nil {
		return community.Post{}, errors.Wrap(err, "inserting post")
	}
	p.CommentCount = 0
	return p, nil
}

func (repo *communityRepository) QueryPosts(ctx context.Context, exec ...core.DBExecutor) ([]community.Post, error) {
	posts := make([]community.Post, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &posts, postSelect+" ORDER BY p.timestamp DESC, p.id DESC")
	return posts, err
}

func (repo *communityRepository) GetPost(ctx context.Context, id int, exec ...core.DBExecutor) (community.Post, error) {
	var p community.Post
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &p, postSelect+" WHERE p.id = $1", id)
	return p, trapNoRowsErr(err, community.ErrPostNotFound)
}

func (repo *communityRepository) CreateComment(ctx context.Context, c community.Comment, exec ...core.DBExecutor) (community.Comment, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &c.ID,
		"INSERT INTO community_comments (post_id, user_id, content, timestamp) VALUES ($1, $2, $3, $4) RETURNING id",
		c.PostID, c.UserID, c.Content, c.Timestamp)
	if err != nil {
		return community.Comment{}, errors.Wrap(err, "inserting comment")
	}
	return c, nil
}

func (repo *communityRepository) QueryComments(ctx context.Context, postID int, exec ...core.DBExecutor) ([]community.Comment, error) {
	comments := make([]community.Comment, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &comments,
		`SELECT c.id, c.post_id, c.user_id, u.username, c.content, c.timestamp
		FROM community_comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 ORDER BY c.timestamp, c.id`, postID)
	return comments, err
}

func (repo *communityRepository) CreateDirectMessage(ctx context.Context, m community.DirectMessage, exec ...core.DBExecutor) (community.DirectMessage, error) {
	err := sqlx.GetContext(ctx, repo.getExec(exec...), &m.ID,
		`INSERT INTO direct_messages (sender_id, receiver_id, content_encrypted, timestamp)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		m.SenderID, m.ReceiverID, m.ContentEncrypted, m.Timestamp)
	if err != nil {
		return community.DirectMessage{}, errors.Wrap(err, "inserting direct message")
	}
	return m, nil
}

func (repo *communityRepository) QueryConversation(ctx context.Context, userID, peerID, limit int, exec ...core.DBExecutor) ([]community.DirectMessage, error) {
	msgs := make([]community.DirectMessage, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec...), &msgs,
		`SELECT * FROM (
			SELECT m.id, m.sender_id, u.username AS sender_username, m.receiver_id, m.content_encrypted, m.timestamp
			FROM direct_messages m JOIN users u ON u.id = m.sender_id
			WHERE (m.sender_id = $1 AND m.receiver_id = $2) OR (m.sender_id = $2 AND m.receiver_id = $1)
			ORDER BY m.timestamp DESC, m.id DESC LIMIT $3
		) latest ORDER BY timestamp, id`, userID, peerID, limit)
	return msgs, err
}
