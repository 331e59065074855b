package repositories

import (
	"context"

	"blog-service/internal/domain/entities"
)

type TagRepository interface {
	// EnsureByName returns the stored tag with the given name, creating it
	// first when missing. It never creates a duplicate name.
	EnsureByName(ctx context.Context, tag *entities.ValidatedTag) (*entities.Tag, error)
	FindByName(ctx context.Context, name string) (*entities.Tag, error)
	// FindByNames returns the stored tags whose names appear in names.
	FindByNames(ctx context.Context, names []string) ([]entities.Tag, error)
	List(ctx context.Context) ([]entities.Tag, error)
}
