package entities

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnums(t *testing.T) {
	t.Run("parse known values", func(t *testing.T) {
		level, err := ParseLevel("Advanced")
		require.NoError(t, err)
		assert.Equal(t, LevelAdvanced, level)

		category, err := ParseCategory("Python Basics")
		require.NoError(t, err)
		assert.Equal(t, CategoryPythonBasics, category)
	})

	t.Run("reject values outside the set", func(t *testing.T) {
		_, err := ParseLevel("beginner")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = ParseCategory("Cooking")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "category", validationErr.Field)
	})

	t.Run("unmarshal text validates", func(t *testing.T) {
		var c Category
		require.NoError(t, c.UnmarshalText([]byte("Web Dev")))
		assert.Equal(t, CategoryWebDev, c)
		assert.Error(t, c.UnmarshalText([]byte("web dev")))
	})

	t.Run("declaration order", func(t *testing.T) {
		assert.Len(t, Levels(), 3)
		assert.Len(t, Categories(), 6)
		for _, c := range Categories() {
			assert.True(t, c.Valid(), c)
		}
	})
}

func TestUserValidation(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		validated, err := NewValidatedUser(NewUser("alice", "alice@x.com"))
		require.NoError(t, err)
		assert.Equal(t, "alice", validated.GetUser().Username)
	})

	tests := []struct {
		name     string
		username string
		email    string
		field    string
	}{
		{"username too short", "a", "a@x.com", UserFieldUsername},
		{"username too long", strings.Repeat("u", 51), "a@x.com", UserFieldUsername},
		{"malformed email", "alice", "not-an-email", UserFieldEmail},
		{"email too long", "alice", strings.Repeat("e", 115) + "@x.com", UserFieldEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewValidatedUser(NewUser(tt.username, tt.email))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestPostValidation(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))

	t.Run("new post defaults", func(t *testing.T) {
		post := NewPost(1, "Intro", "Hello world", LevelBeginner, CategoryPythonBasics, now)
		assert.True(t, post.Published)
		assert.Empty(t, post.Tags)
		assert.Equal(t, time.UTC, post.CreatedAt.Location())

		_, err := NewValidatedPost(post)
		require.NoError(t, err)
	})

	tests := []struct {
		name  string
		post  *Post
		field string
	}{
		{"title too short", NewPost(1, "I", "Hello", LevelBeginner, CategoryFlask, now), PostFieldTitle},
		{"title too long", NewPost(1, strings.Repeat("t", 101), "Hello", LevelBeginner, CategoryFlask, now), PostFieldTitle},
		{"content too short", NewPost(1, "Intro", "x", LevelBeginner, CategoryFlask, now), PostFieldContent},
		{"missing author", NewPost(0, "Intro", "Hello", LevelBeginner, CategoryFlask, now), PostFieldUserID},
		{"unknown level", NewPost(1, "Intro", "Hello", Level("Expert"), CategoryFlask, now), PostFieldLevel},
		{"unknown category", NewPost(1, "Intro", "Hello", LevelBeginner, Category("Go"), now), PostFieldCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewValidatedPost(tt.post)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	t.Run("content length counts whitespace", func(t *testing.T) {
		_, err := NewValidatedPost(NewPost(1, "Intro", " a", LevelBeginner, CategoryFlask, now))
		assert.NoError(t, err)
	})

	t.Run("duplicate tags rejected", func(t *testing.T) {
		post := NewPost(1, "Intro", "Hello", LevelBeginner, CategoryFlask, now)
		post.Tags = []Tag{{ID: 1, Name: "Tips"}, {ID: 1, Name: "Tips"}}
		_, err := NewValidatedPost(post)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("set tags sorts by name", func(t *testing.T) {
		post := NewPost(1, "Intro", "Hello", LevelBeginner, CategoryFlask, now)
		post.SetTags([]Tag{{ID: 1, Name: "Tutorial"}, {ID: 2, Name: "Tips"}})
		assert.Equal(t, []string{"Tips", "Tutorial"}, TagNames(post.Tags))
	})

	t.Run("clone is detached", func(t *testing.T) {
		post := NewPost(1, "Intro", "Hello", LevelBeginner, CategoryFlask, now)
		post.Author = NewUser("alice", "alice@x.com")
		post.SetTags([]Tag{{ID: 1, Name: "Tips"}})

		c := post.Clone()
		c.Author.Username = "bob"
		c.Tags[0].Name = "Other"
		assert.Equal(t, "alice", post.Author.Username)
		assert.Equal(t, "Tips", post.Tags[0].Name)
	})
}

func TestTagValidation(t *testing.T) {
	validated, err := NewValidatedTag(NewTag("  Tips "))
	require.NoError(t, err)
	assert.Equal(t, "Tips", validated.GetTag().Name)

	_, err = NewValidatedTag(NewTag("   "))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewValidatedTag(NewTag(strings.Repeat("x", 51)))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(NewNotFoundError("post", 7), ErrNotFound))
	assert.True(t, errors.Is(NewConflictError("user", "email", "a@x.com"), ErrConflict))
	assert.True(t, errors.Is(NewValidationError("title", "too short"), ErrValidation))
	assert.False(t, errors.Is(NewNotFoundError("post", 7), ErrConflict))

	assert.Equal(t, "post 7 not found", NewNotFoundError("post", 7).Error())
	assert.Equal(t, `user email "a@x.com" already exists`, NewConflictError("user", "email", "a@x.com").Error())
	assert.Equal(t, "title: too short", NewValidationError("title", "too short").Error())
}

func TestIdempotencyRecord(t *testing.T) {
	record := NewIdempotencyRecord("key-1", `{"a":1}`)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", record.Id.String())

	record.SetResponse(`{"ok":true}`, 201)
	assert.Equal(t, 201, record.StatusCode)
	assert.Equal(t, `{"ok":true}`, record.Response)
}
