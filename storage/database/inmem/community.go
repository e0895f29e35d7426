package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/unisphere/core"
	"github.com/trezcool/unisphere/core/community"
)

type communityRepository struct {
	db *DB
}

var _ community.Repository = (*communityRepository)(nil)

func NewCommunityRepository(db *DB) community.Repository {
	return &communityRepository{db: db}
}

func (repo *communityRepository) username(id int) string {
	return repo.db.t.users[id].Username
}

func (repo *communityRepository) post(p community.Post) community.Post {
	p.Username = repo.username(p.UserID)
	p.CommentCount = 0
	for _, c := range repo.db.t.comments {
		if c.PostID == p.ID {
			p.CommentCount++
		}
	}
	return p
}

func (repo *communityRepository) CreatePost(_ context.Context, p community.Post, _ ...core.DBExecutor) (community.Post, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	p.ID = repo.db.nextPK()
	repo.db.t.posts[p.ID] = p
	return repo.post(p), nil
}

func (repo *communityRepository) QueryPosts(_ context.Context, _ ...core.DBExecutor) ([]community.Post, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	posts := make([]community.Post, 0, len(repo.db.t.posts))
	for _, p := range repo.db.t.posts {
		posts = append(posts, repo.post(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Timestamp.Equal(posts[j].Timestamp) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
	return posts, nil
}

func (repo *communityRepository) GetPost(_ context.Context, id int, _ ...core.DBExecutor) (community.Post, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	p, ok := repo.db.t.posts[id]
	if !ok {
		return community.Post{}, community.ErrPostNotFound
	}
	return repo.post(p), nil
}

func (repo *communityRepository) CreateComment(_ context.Context, c community.Comment, _ ...core.DBExecutor) (community.Comment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.t.posts[c.PostID]; !ok {
		return community.Comment{}, community.ErrPostNotFound
	}
	c.ID = repo.db.nextPK()
	repo.db.t.comments[c.ID] = c
	c.Username = repo.username(c.UserID)
	return c, nil
}

func (repo *communityRepository) QueryComments(_ context.Context, postID int, _ ...core.DBExecutor) ([]community.Comment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	comments := make([]community.Comment, 0)
	for _, c := range repo.db.t.comments {
		if c.PostID == postID {
			c.Username = repo.username(c.UserID)
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].Timestamp.Equal(comments[j].Timestamp) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].Timestamp.Before(comments[j].Timestamp)
	})
	return comments, nil
}

func (repo *communityRepository) CreateDirectMessage(_ context.Context, m community.DirectMessage, _ ...core.DBExecutor) (community.DirectMessage, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	m.ID = repo.db.nextPK()
	repo.db.t.messages[m.ID] = m
	m.SenderUsername = repo.username(m.SenderID)
	return m, nil
}

func (repo *communityRepository) QueryConversation(_ context.Context, userID, peerID, limit int, _ ...core.DBExecutor) ([]community.DirectMessage, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	msgs := make([]community.DirectMessage, 0)
	for _, m := range repo.db.t.messages {
		if (m.SenderID == userID && m.ReceiverID == peerID) || (m.SenderID == peerID && m.ReceiverID == userID) {
			m.SenderUsername = repo.username(m.SenderID)
			msgs = append(msgs, m)
		}
	}
	// newest first to apply the limit, then back to chronological order
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].Timestamp.Equal(msgs[j].Timestamp) {
			return msgs[i].ID > msgs[j].ID
		}
		return msgs[i].Timestamp.After(msgs[j].Timestamp)
	})
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
