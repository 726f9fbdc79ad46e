package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// Mock is an in-memory Social implementation for tests: posts and
// comments live only in process memory, and ids are assigned
// sequentially.
type Mock struct {
	mu         sync.Mutex
	posts      map[string]Post
	comments   map[string][]Comment
	identities map[string]Identity
	nextPostID int
	nextCmtID  int
	clock      int64 // monotonic counter standing in for a real timestamp
}

var _ Social = (*Mock)(nil)

// NewMock returns an empty Mock transport.
func NewMock() *Mock {
	return &Mock{
		posts:      make(map[string]Post),
		comments:   make(map[string][]Comment),
		identities: make(map[string]Identity),
	}
}

// RegisterIdentity makes id resolvable by GetIdentity.
func (m *Mock) RegisterIdentity(id Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identities[id.ID] = id
}

func (m *Mock) GetPost(ctx context.Context, id string) (Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return Post{}, waterscapeerr.Unauthorized("post not found: " + id)
	}
	return post, nil
}

func (m *Mock) CreatePost(ctx context.Context, submolt, authorID, text string) (Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPostID++
	m.clock++
	post := Post{
		ID:        fmt.Sprintf("post-%d", m.nextPostID),
		Submolt:   submolt,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: m.clock,
	}
	m.posts[post.ID] = post
	return post, nil
}

func (m *Mock) CreateComment(ctx context.Context, postID, authorID, text string) (Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[postID]; !ok {
		return Comment{}, waterscapeerr.Unauthorized("post not found: " + postID)
	}

	m.nextCmtID++
	m.clock++
	comment := Comment{
		ID:        fmt.Sprintf("comment-%d", m.nextCmtID),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: m.clock,
	}
	m.comments[postID] = append(m.comments[postID], comment)
	return comment, nil
}

func (m *Mock) GetPosts(ctx context.Context, submolt string, limit int) ([]Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []Post
	for i := m.nextPostID; i >= 1; i-- {
		post, ok := m.posts[fmt.Sprintf("post-%d", i)]
		if !ok || post.Submolt != submolt {
			continue
		}
		result = append(result, post)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *Mock) GetIdentity(ctx context.Context, id string) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.identities[id]
	if !ok {
		return Identity{}, waterscapeerr.Unauthorized("identity not found: " + id)
	}
	return identity, nil
}
