package repositories

import (
	"context"

	"blog-service/internal/domain/entities"
)

// PostFilter narrows List. Zero values match everything.
type PostFilter struct {
	UserID uint
}

// PostRepository lookups return (nil, nil) when nothing matches. Returned
// posts carry their author and tags.
type PostRepository interface {
	// Create stores the post together with its tag associations.
	Create(ctx context.Context, post *entities.ValidatedPost) (*entities.Post, error)
	FindById(ctx context.Context, id uint) (*entities.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*entities.Post, error)
	// Update writes only the named columns of post; tags are left alone.
	Update(ctx context.Context, post *entities.ValidatedPost, fields ...string) error
	// ReplaceTags swaps the post's whole tag set for tags.
	ReplaceTags(ctx context.Context, postID uint, tags []entities.Tag) error
	Delete(ctx context.Context, id uint) error
}
