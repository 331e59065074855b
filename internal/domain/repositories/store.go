package repositories

import "context"

// Store is the Entity Store: keyed storage for users, posts and tags plus the
// post/tag association. The repositories returned by a Store obtained inside
// RunInTx only see and write the transaction's state.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Tags() TagRepository

	// RunInTx executes fn as one unit of work. Every write made through the
	// Store passed to fn commits together, or none does when fn returns an
	// error or ctx is cancelled before commit.
	RunInTx(ctx context.Context, fn func(tx Store) error) error

	Close() error
}
