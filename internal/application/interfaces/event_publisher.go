package interfaces

import "context"

// Subjects published after a successful commit.
const (
	SubjectUserCreated = "blog.user.created"
	SubjectUserUpdated = "blog.user.updated"
	SubjectUserDeleted = "blog.user.deleted"
	SubjectPostCreated = "blog.post.created"
	SubjectPostUpdated = "blog.post.updated"
	SubjectPostDeleted = "blog.post.deleted"
)

type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}
