package repositories

import (
	"context"

	"blog-service/internal/domain/entities"
)

// UserRepository lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uint) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	// Update writes only the named columns of user.
	Update(ctx context.Context, user *entities.ValidatedUser, fields ...string) (*entities.User, error)
	// Delete removes the user and every post it authored.
	Delete(ctx context.Context, id uint) error
}
