// Package catalog owns the configured tag vocabulary: it seeds the vocabulary
// into the Entity Store and resolves requested tag names to stored tags.
package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
)

type Catalog struct {
	vocabulary []string
	known      map[string]struct{}
}

// New builds a catalog over vocabulary. Blank and repeated names are ignored.
func New(vocabulary []string) *Catalog {
	names := normalize(vocabulary)
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}
	return &Catalog{vocabulary: names, known: known}
}

// Knows reports whether name is part of the configured vocabulary.
func (c *Catalog) Knows(name string) bool {
	_, ok := c.known[name]
	return ok
}

func (c *Catalog) Vocabulary() []string {
	return append([]string(nil), c.vocabulary...)
}

// Seed creates a tag for every vocabulary name not yet stored. Running it
// again is a no-op.
func (c *Catalog) Seed(ctx context.Context, store repositories.Store) error {
	created := 0
	err := store.RunInTx(ctx, func(tx repositories.Store) error {
		for _, name := range c.vocabulary {
			existing, err := tx.Tags().FindByName(ctx, name)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}

			validated, err := entities.NewValidatedTag(entities.NewTag(name))
			if err != nil {
				return fmt.Errorf("seed tag %q: %w", name, err)
			}
			if _, err := tx.Tags().EnsureByName(ctx, validated); err != nil {
				return fmt.Errorf("seed tag %q: %w", name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Tag catalog seeded: %d created, %d configured", created, len(c.vocabulary))
	return nil
}

// Resolve maps names to stored tags. Names outside the vocabulary or without a
// stored tag are dropped, repeated names collapse to one tag, and the result
// is ordered by name.
func (c *Catalog) Resolve(ctx context.Context, tags repositories.TagRepository, names []string) ([]entities.Tag, error) {
	wanted := make([]string, 0, len(names))
	for _, n := range normalize(names) {
		if c.Knows(n) {
			wanted = append(wanted, n)
		}
	}
	if len(wanted) == 0 {
		return []entities.Tag{}, nil
	}

	found, err := tags.FindByNames(ctx, wanted)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}

	resolved := make([]entities.Tag, 0, len(found))
	seen := make(map[uint]struct{}, len(found))
	for _, t := range found {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		resolved = append(resolved, t)
	}
	entities.SortTags(resolved)
	return resolved, nil
}

// List returns the stored tags of the vocabulary ordered by name. Tags left
// over from an earlier, larger vocabulary are not listed.
func (c *Catalog) List(ctx context.Context, tags repositories.TagRepository) ([]entities.Tag, error) {
	all, err := tags.List(ctx)
	if err != nil {
		return nil, err
	}
	listed := make([]entities.Tag, 0, len(all))
	for _, t := range all {
		if c.Knows(t.Name) {
			listed = append(listed, t)
		}
	}
	entities.SortTags(listed)
	return listed, nil
}

func normalize(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
