// Package transport sketches the social-platform boundary waterscape
// carriers are meant to be posted through: ordinary-looking posts and
// comments, scoped to a community ("submolt"), that happen to carry a
// hidden envelope. It defines the capability set a real integration (a
// specific social API client) would implement; no such client lives
// here. The shape follows a submolt-scoped feed, not an author-scoped
// one: browsing a community for carrier text is the access pattern an
// agent actually needs, and a post's author is metadata on the post,
// not a query key.
package transport

import "context"

// Post is a single piece of carrier text published to a submolt, along
// with the platform-assigned identifiers needed to reference it.
type Post struct {
	ID        string
	Submolt   string
	AuthorID  string
	Text      string // a carrier string: visible text plus any hidden envelope
	CreatedAt int64
}

// Comment is a reply to a Post, carrying its own carrier text.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	CreatedAt int64
}

// Identity is the minimal platform identity waterscape needs to
// resolve an agent to a public key, independent of however the
// platform models profiles.
type Identity struct {
	ID   string
	Name string
}

// Social is the capability set a social-platform transport must
// provide for waterscape to post and read carrier text. Implementations
// are responsible for translating these calls to the platform's own
// wire protocol (REST, GraphQL, or otherwise); waterscape's codec has
// no dependency on any of them.
type Social interface {
	// GetPost fetches a single post by id.
	GetPost(ctx context.Context, postID string) (Post, error)

	// GetPosts lists the most recent posts in submolt, most recent
	// first, up to limit (0 meaning unbounded).
	GetPosts(ctx context.Context, submolt string, limit int) ([]Post, error)

	// CreatePost publishes carrier text as a new post in submolt,
	// authored by authorID, and returns the created post with its
	// platform-assigned id.
	CreatePost(ctx context.Context, submolt, authorID, text string) (Post, error)

	// CreateComment publishes carrier text as a comment on postID,
	// authored by authorID.
	CreateComment(ctx context.Context, postID, authorID, text string) (Comment, error)

	// GetIdentity resolves agentID to a platform identity.
	GetIdentity(ctx context.Context, agentID string) (Identity, error)
}
