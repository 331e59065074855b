package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(Options{
		Driver:   DriverSQLite,
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newUser(t *testing.T, username, email string) *entities.ValidatedUser {
	t.Helper()
	validated, err := entities.NewValidatedUser(entities.NewUser(username, email))
	require.NoError(t, err)
	return validated
}

func newPost(t *testing.T, userID uint, tags ...entities.Tag) *entities.ValidatedPost {
	t.Helper()
	post := entities.NewPost(userID, "Intro", "Hello world", entities.LevelBeginner, entities.CategoryPythonBasics, time.Now())
	post.SetTags(tags)
	validated, err := entities.NewValidatedPost(post)
	require.NoError(t, err)
	return validated
}

func ensureTags(t *testing.T, s repositories.Store, names ...string) []entities.Tag {
	t.Helper()
	tags := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		validated, err := entities.NewValidatedTag(entities.NewTag(name))
		require.NoError(t, err)
		tag, err := s.Tags().EnsureByName(context.Background(), validated)
		require.NoError(t, err)
		tags = append(tags, *tag)
	}
	return tags
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		created, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)

		found, err := s.Users().FindByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)

		missing, err := s.Users().FindById(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("unique index surfaces as conflict", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		_, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)

		_, err = s.Users().Create(ctx, newUser(t, "alice", "other@x.com"))
		assert.ErrorIs(t, err, entities.ErrConflict)
	})

	t.Run("update writes only listed fields", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		created, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)

		changed := &entities.User{ID: created.ID, Username: "ignored", Email: "new@x.com"}
		updated, err := s.Users().Update(ctx, &entities.ValidatedUser{User: changed}, entities.UserFieldEmail)
		require.NoError(t, err)
		assert.Equal(t, "alice", updated.Username)
		assert.Equal(t, "new@x.com", updated.Email)
	})

	t.Run("delete cascades to posts and tag links", func(t *testing.T) {
		db := openTestDB(t)
		s := NewStore(db)
		tags := ensureTags(t, s, "Tips", "Tutorial")
		alice, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)
		bob, err := s.Users().Create(ctx, newUser(t, "bob", "bob@x.com"))
		require.NoError(t, err)
		gone, err := s.Posts().Create(ctx, newPost(t, alice.ID, tags...))
		require.NoError(t, err)
		kept, err := s.Posts().Create(ctx, newPost(t, bob.ID, tags...))
		require.NoError(t, err)

		require.NoError(t, s.Users().Delete(ctx, alice.ID))

		found, err := s.Posts().FindById(ctx, gone.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
		found, err = s.Posts().FindById(ctx, kept.ID)
		require.NoError(t, err)
		assert.NotNil(t, found)

		var links int64
		require.NoError(t, db.Model(&PostTagModel{}).Where("post_id = ?", gone.ID).Count(&links).Error)
		assert.Zero(t, links)
	})
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create preloads author and tags", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		tags := ensureTags(t, s, "Tutorial", "Tips")
		alice, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)

		post, err := s.Posts().Create(ctx, newPost(t, alice.ID, tags...))
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.ID)
		require.NotNil(t, post.Author)
		assert.Equal(t, "alice", post.Author.Username)
		assert.Equal(t, []string{"Tips", "Tutorial"}, entities.TagNames(post.Tags))
		assert.True(t, post.Published)
		assert.Equal(t, entities.CategoryPythonBasics, post.Category)
	})

	t.Run("missing author violates the foreign key", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		_, err := s.Posts().Create(ctx, newPost(t, 42))
		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, entities.PostFieldUserID, validationErr.Field)
	})

	t.Run("update and replace tags", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		tags := ensureTags(t, s, "Tutorial", "Tips", "Performance")
		alice, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)
		post, err := s.Posts().Create(ctx, newPost(t, alice.ID, tags[0], tags[1]))
		require.NoError(t, err)

		post.Title = "New Title"
		post.Content = "not written"
		require.NoError(t, s.Posts().Update(ctx, &entities.ValidatedPost{Post: post}, entities.PostFieldTitle))
		require.NoError(t, s.Posts().ReplaceTags(ctx, post.ID, tags[2:]))

		found, err := s.Posts().FindById(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "New Title", found.Title)
		assert.Equal(t, "Hello world", found.Content)
		assert.Equal(t, []string{"Performance"}, entities.TagNames(found.Tags))
	})

	t.Run("list filters by author", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		alice, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)
		bob, err := s.Users().Create(ctx, newUser(t, "bob", "bob@x.com"))
		require.NoError(t, err)
		for _, id := range []uint{alice.ID, bob.ID, alice.ID} {
			_, err := s.Posts().Create(ctx, newPost(t, id))
			require.NoError(t, err)
		}

		mine, err := s.Posts().List(ctx, repositories.PostFilter{UserID: alice.ID})
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, uint(1), mine[0].ID)
		assert.Equal(t, uint(3), mine[1].ID)
	})

	t.Run("delete removes the post", func(t *testing.T) {
		s := NewStore(openTestDB(t))
		tags := ensureTags(t, s, "Tips")
		alice, err := s.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		require.NoError(t, err)
		post, err := s.Posts().Create(ctx, newPost(t, alice.ID, tags...))
		require.NoError(t, err)

		require.NoError(t, s.Posts().Delete(ctx, post.ID))
		found, err := s.Posts().FindById(ctx, post.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTagRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore(openTestDB(t))

	first := ensureTags(t, s, "Tips")[0]
	again := ensureTags(t, s, "Tips")[0]
	assert.Equal(t, first.ID, again.ID)

	ensureTags(t, s, "Tutorial")
	found, err := s.Tags().FindByNames(ctx, []string{"Tutorial", "Nope", "Tips"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tips", "Tutorial"}, entities.TagNames(found))

	all, err := s.Tags().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRunInTx(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")
	s := NewStore(openTestDB(t))

	err := s.RunInTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().Create(ctx, newUser(t, "alice", "alice@x.com")); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	err = s.RunInTx(ctx, func(tx repositories.Store) error {
		_, err := tx.Users().Create(ctx, newUser(t, "alice", "alice@x.com"))
		return err
	})
	require.NoError(t, err)

	users, err = s.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(openTestDB(t))

	missing, err := repo.FindByKey(ctx, "key-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	record := entities.NewIdempotencyRecord("key-1", `{"username":"alice"}`)
	record.SetResponse(`{"result":{"id":1}}`, 201)
	_, err = repo.Create(ctx, record)
	require.NoError(t, err)

	found, err := repo.FindByKey(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, record.Id, found.Id)
	assert.Equal(t, record.Response, found.Response)
	assert.Equal(t, 201, found.StatusCode)

	_, err = repo.Create(ctx, entities.NewIdempotencyRecord("key-1", "{}"))
	assert.ErrorIs(t, err, entities.ErrConflict)

	t.Run("reserve then complete", func(t *testing.T) {
		reserved := entities.NewIdempotencyRecord("key-2", `{"title":"Intro"}`)
		_, err := repo.Create(ctx, reserved)
		require.NoError(t, err)

		pending, err := repo.FindByKey(ctx, "key-2")
		require.NoError(t, err)
		require.NotNil(t, pending)
		assert.True(t, pending.Pending())

		reserved.SetResponse(`{"result":{"id":7}}`, 201)
		require.NoError(t, repo.Update(ctx, reserved))

		done, err := repo.FindByKey(ctx, "key-2")
		require.NoError(t, err)
		assert.False(t, done.Pending())
		assert.Equal(t, `{"result":{"id":7}}`, done.Response)
	})

	t.Run("delete frees the key", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "key-1"))

		gone, err := repo.FindByKey(ctx, "key-1")
		require.NoError(t, err)
		assert.Nil(t, gone)

		_, err = repo.Create(ctx, entities.NewIdempotencyRecord("key-1", "{}"))
		assert.NoError(t, err)
	})
}
