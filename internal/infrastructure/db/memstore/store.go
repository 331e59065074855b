// Package memstore is an in-memory Entity Store. State lives in a single
// dataset guarded by a sync.RWMutex; every write works on a copy that replaces
// the live dataset only when the whole unit of work succeeds. The state can
// optionally be loaded from and flushed to a JSON snapshot file.
package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"blog-service/internal/domain/repositories"
)

var ErrStoreClosed = errors.New("store is closed")

type Store struct {
	mu           sync.RWMutex
	data         *dataset
	snapshotPath string
	closed       bool
}

// New returns an empty store without a snapshot file.
func New() *Store {
	return &Store{data: newDataset()}
}

// Open returns a store backed by the snapshot at path. A missing file starts
// an empty store; the file is written on Close.
func Open(path string) (*Store, error) {
	s := &Store{data: newDataset(), snapshotPath: path}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	loaded := newDataset()
	if err := json.Unmarshal(raw, loaded); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	loaded.ensureMaps()
	s.data = loaded
	log.Printf("Loaded memory snapshot %s: %d users, %d posts, %d tags",
		path, len(loaded.Users), len(loaded.Posts), len(loaded.Tags))
	return s, nil
}

func (s *Store) Users() repositories.UserRepository {
	return &userRepository{scope{store: s}}
}

func (s *Store) Posts() repositories.PostRepository {
	return &postRepository{scope{store: s}}
}

func (s *Store) Tags() repositories.TagRepository {
	return &tagRepository{scope{store: s}}
}

func (s *Store) RunInTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return scope{store: s}.write(ctx, func(d *dataset) error {
		return fn(&txStore{data: d})
	})
}

// Close flushes the snapshot, if any, and rejects further use.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.snapshotPath == "" {
		return nil
	}
	return writeSnapshot(s.snapshotPath, s.data)
}

func writeSnapshot(path string, d *dataset) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// txStore is the Store view handed to a RunInTx callback.
type txStore struct {
	data *dataset
}

func (t *txStore) Users() repositories.UserRepository {
	return &userRepository{scope{tx: t.data}}
}

func (t *txStore) Posts() repositories.PostRepository {
	return &postRepository{scope{tx: t.data}}
}

func (t *txStore) Tags() repositories.TagRepository {
	return &tagRepository{scope{tx: t.data}}
}

// RunInTx nests: fn works on a copy that is folded into the outer
// transaction on success.
func (t *txStore) RunInTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	work := t.data.clone()
	if err := fn(&txStore{data: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	*t.data = *work
	return nil
}

func (t *txStore) Close() error {
	return nil
}

// scope routes repository calls either to a running transaction's dataset or
// to the live store, where reads share the lock and each write is atomic.
type scope struct {
	store *Store
	tx    *dataset
}

func (sc scope) read(fn func(d *dataset) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()
	if sc.store.closed {
		return ErrStoreClosed
	}
	return fn(sc.store.data)
}

func (sc scope) write(ctx context.Context, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sc.tx != nil {
		return fn(sc.tx)
	}

	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	if sc.store.closed {
		return ErrStoreClosed
	}

	work := sc.store.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	sc.store.data = work
	return nil
}

var _ repositories.Store = (*Store)(nil)
