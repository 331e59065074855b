package repositories

import (
	"context"

	"blog-service/internal/domain/entities"
)

// IdempotencyRepository keeps one record per client key. Create fails with a
// ConflictError when the key is taken.
type IdempotencyRepository interface {
	Create(ctx context.Context, record *entities.IdempotencyRecord) (*entities.IdempotencyRecord, error)
	FindByKey(ctx context.Context, key string) (*entities.IdempotencyRecord, error)
	Update(ctx context.Context, record *entities.IdempotencyRecord) error
	Delete(ctx context.Context, key string) error
}
