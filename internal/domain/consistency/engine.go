// Package consistency holds the cross-entity rules checked before a user or
// post mutation is written: identity uniqueness, author existence, category
// immutability, sparse-update merging and tag-set replacement.
//
// The engine is stateless apart from its policy. Every check takes the
// repositories of the unit of work it runs in, so reads observe the same
// transaction the caller will commit.
package consistency

import (
	"context"
	"fmt"

	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
)

type Engine struct {
	immutableCategory bool
}

type Option func(*Engine)

// WithCategoryImmutable toggles rejection of category changes on update.
func WithCategoryImmutable(enabled bool) Option {
	return func(e *Engine) {
		e.immutableCategory = enabled
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{immutableCategory: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) CategoryImmutable() bool {
	return e.immutableCategory
}

// EnsureUsernameAvailable fails with a ConflictError when another user holds
// candidate. current is the user being updated, or nil on create; resubmitting
// current's own username is never a conflict.
func (e *Engine) EnsureUsernameAvailable(ctx context.Context, users repositories.UserRepository, candidate string, current *entities.User) error {
	if current != nil && current.Username == candidate {
		return nil
	}
	existing, err := users.FindByUsername(ctx, candidate)
	if err != nil {
		return err
	}
	if existing != nil && (current == nil || existing.ID != current.ID) {
		return entities.NewConflictError("user", entities.UserFieldUsername, candidate)
	}
	return nil
}

// EnsureEmailAvailable is EnsureUsernameAvailable for email.
func (e *Engine) EnsureEmailAvailable(ctx context.Context, users repositories.UserRepository, candidate string, current *entities.User) error {
	if current != nil && current.Email == candidate {
		return nil
	}
	existing, err := users.FindByEmail(ctx, candidate)
	if err != nil {
		return err
	}
	if existing != nil && (current == nil || existing.ID != current.ID) {
		return entities.NewConflictError("user", entities.UserFieldEmail, candidate)
	}
	return nil
}

// CheckNewUser runs the create-time identity checks.
func (e *Engine) CheckNewUser(ctx context.Context, users repositories.UserRepository, user *entities.User) error {
	if err := e.EnsureUsernameAvailable(ctx, users, user.Username, nil); err != nil {
		return err
	}
	return e.EnsureEmailAvailable(ctx, users, user.Email, nil)
}

// CheckUserPatch checks uniqueness of the supplied identity fields only.
func (e *Engine) CheckUserPatch(ctx context.Context, users repositories.UserRepository, current *entities.User, patch entities.UserPatch) error {
	if patch.Username != nil {
		if err := e.EnsureUsernameAvailable(ctx, users, *patch.Username, current); err != nil {
			return err
		}
	}
	if patch.Email != nil {
		if err := e.EnsureEmailAvailable(ctx, users, *patch.Email, current); err != nil {
			return err
		}
	}
	return nil
}

// MergeUser copies the supplied fields onto user and returns their columns.
func (e *Engine) MergeUser(user *entities.User, patch entities.UserPatch) []string {
	var fields []string
	if patch.Username != nil {
		user.Username = *patch.Username
		fields = append(fields, entities.UserFieldUsername)
	}
	if patch.Email != nil {
		user.Email = *patch.Email
		fields = append(fields, entities.UserFieldEmail)
	}
	return fields
}

// RequireAuthor loads the user a post will reference.
func (e *Engine) RequireAuthor(ctx context.Context, users repositories.UserRepository, userID uint) (*entities.User, error) {
	author, err := users.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, entities.NewNotFoundError("user", userID)
	}
	return author, nil
}

// CheckCategory rejects a category that differs from the stored one while
// the immutability policy is on.
func (e *Engine) CheckCategory(post *entities.Post, candidate entities.Category) error {
	if !e.immutableCategory || candidate == post.Category {
		return nil
	}
	return entities.NewValidationError(entities.PostFieldCategory,
		fmt.Sprintf("cannot change category from %q to %q", post.Category, candidate))
}

// PostChange describes what a merge changed on a post.
type PostChange struct {
	Fields      []string
	ReplaceTags bool
	TagNames    []string
}

// MergePost applies a sparse update to post. Only supplied fields change; a
// supplied tag list replaces the tag set wholesale.
func (e *Engine) MergePost(post *entities.Post, patch entities.PostPatch) (PostChange, error) {
	var change PostChange

	if patch.Category != nil {
		if err := e.CheckCategory(post, *patch.Category); err != nil {
			return PostChange{}, err
		}
	}

	if patch.Title != nil {
		post.Title = *patch.Title
		change.Fields = append(change.Fields, entities.PostFieldTitle)
	}
	if patch.Content != nil {
		post.Content = *patch.Content
		change.Fields = append(change.Fields, entities.PostFieldContent)
	}
	if patch.Level != nil {
		post.Level = *patch.Level
		change.Fields = append(change.Fields, entities.PostFieldLevel)
	}
	if patch.Category != nil {
		post.Category = *patch.Category
		change.Fields = append(change.Fields, entities.PostFieldCategory)
	}
	if patch.Tags != nil {
		change.ReplaceTags = true
		change.TagNames = append([]string{}, (*patch.Tags)...)
	}
	return change, nil
}

// ReplacePost applies a full update to post in rule order: the new author
// must exist when it differs, then the category must be unchanged.
func (e *Engine) ReplacePost(ctx context.Context, users repositories.UserRepository, post *entities.Post, repl entities.PostReplacement) (PostChange, error) {
	if repl.UserID != post.UserID {
		author, err := e.RequireAuthor(ctx, users, repl.UserID)
		if err != nil {
			return PostChange{}, err
		}
		post.Author = author
	}
	if err := e.CheckCategory(post, repl.Category); err != nil {
		return PostChange{}, err
	}

	post.Title = repl.Title
	post.Content = repl.Content
	post.UserID = repl.UserID
	post.Level = repl.Level
	post.Category = repl.Category

	return PostChange{
		Fields: []string{
			entities.PostFieldTitle,
			entities.PostFieldContent,
			entities.PostFieldUserID,
			entities.PostFieldLevel,
			entities.PostFieldCategory,
		},
		ReplaceTags: true,
		TagNames:    append([]string{}, repl.Tags...),
	}, nil
}
