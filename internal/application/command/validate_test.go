package command

import (
	"testing"

	"blog-service/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsJSONFieldNames(t *testing.T) {
	tests := []struct {
		name   string
		cmd    interface{ Validate() error }
		field  string
		reason string
	}{
		{
			name:   "missing username",
			cmd:    &CreateUserCommand{Email: "a@x.com"},
			field:  "username",
			reason: "is required",
		},
		{
			name:   "bad email",
			cmd:    &CreateUserCommand{Username: "alice", Email: "nope"},
			field:  "email",
			reason: "must be a valid email address",
		},
		{
			name:   "short title",
			cmd:    &CreatePostCommand{UserID: 1, Title: "x", Content: "body", Level: entities.LevelBeginner, Category: entities.CategoryFlask},
			field:  "title",
			reason: "must be at least 2 characters",
		},
		{
			name:   "missing author",
			cmd:    &CreatePostCommand{Title: "Intro", Content: "body", Level: entities.LevelBeginner, Category: entities.CategoryFlask},
			field:  "user_id",
			reason: "is required",
		},
		{
			name:   "full update without tags",
			cmd:    &UpdatePostCommand{ID: 1, UserID: 1, Title: "Intro", Content: "body", Level: entities.LevelBeginner, Category: entities.CategoryFlask},
			field:  "tags",
			reason: "is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			var validationErr *entities.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, tt.reason, validationErr.Reason)
		})
	}
}

func TestSparseCommands(t *testing.T) {
	t.Run("empty patch is valid", func(t *testing.T) {
		assert.NoError(t, (&PatchPostCommand{ID: 1}).Validate())
		assert.NoError(t, (&UpdateUserCommand{ID: 1}).Validate())
	})

	t.Run("supplied fields are still checked", func(t *testing.T) {
		long := "this title is far too long for a post........................................................................"
		err := (&PatchPostCommand{ID: 1, Title: &long}).Validate()
		assert.ErrorIs(t, err, entities.ErrValidation)

		email := "broken"
		err = (&UpdateUserCommand{ID: 1, Email: &email}).Validate()
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("patch carries only supplied fields", func(t *testing.T) {
		title := "New Title"
		patch := (&PatchPostCommand{ID: 1, Title: &title}).Patch()
		require.NotNil(t, patch.Title)
		assert.Equal(t, "New Title", *patch.Title)
		assert.Nil(t, patch.Content)
		assert.Nil(t, patch.Category)
		assert.Nil(t, patch.Tags)
	})

	t.Run("replacement copies every field", func(t *testing.T) {
		cmd := &UpdatePostCommand{ID: 1, UserID: 2, Title: "T1", Content: "C1", Level: entities.LevelAdvanced, Category: entities.CategoryDjango, Tags: []string{"Tips"}}
		repl := cmd.Replacement()
		assert.Equal(t, uint(2), repl.UserID)
		assert.Equal(t, entities.CategoryDjango, repl.Category)
		assert.Equal(t, []string{"Tips"}, repl.Tags)
	})
}
