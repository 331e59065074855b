package sqlstore

import (
	"context"

	"blog-service/internal/domain/repositories"
	"gorm.io/gorm"
)

// Store is the gorm Entity Store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Users() repositories.UserRepository {
	return &UserRepository{db: s.db}
}

func (s *Store) Posts() repositories.PostRepository {
	return &PostRepository{db: s.db}
}

func (s *Store) Tags() repositories.TagRepository {
	return &TagRepository{db: s.db}
}

func (s *Store) RunInTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(&Store{db: tx}); err != nil {
			return err
		}
		// Abandon the commit when the caller gave up meanwhile.
		return ctx.Err()
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ repositories.Store = (*Store)(nil)
