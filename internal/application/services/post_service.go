package services

import (
	"context"
	"time"

	"blog-service/internal/application/command"
	"blog-service/internal/application/interfaces"
	"blog-service/internal/application/mapper"
	"blog-service/internal/application/query"
	"blog-service/internal/domain/catalog"
	"blog-service/internal/domain/consistency"
	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
)

type PostService struct {
	store       repositories.Store
	engine      *consistency.Engine
	catalog     *catalog.Catalog
	idempotency idempotency
	publisher   interfaces.EventPublisher
	clock       func() time.Time
}

func NewPostService(
	store repositories.Store,
	engine *consistency.Engine,
	tagCatalog *catalog.Catalog,
	idempotencyRepo repositories.IdempotencyRepository,
	publisher interfaces.EventPublisher,
) interfaces.PostService {
	return &PostService{
		store:       store,
		engine:      engine,
		catalog:     tagCatalog,
		idempotency: idempotency{repo: idempotencyRepo},
		publisher:   publisher,
		clock:       time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, createCommand *command.CreatePostCommand) (*command.CreatePostCommandResult, error) {
	if err := createCommand.Validate(); err != nil {
		return nil, err
	}

	var result command.CreatePostCommandResult
	replayed, err := s.idempotency.reserve(ctx, createCommand.IdempotencyKey, createCommand, &result)
	if err != nil {
		return nil, err
	}
	if replayed {
		return &result, nil
	}

	var createdPost *entities.Post
	err = s.store.RunInTx(ctx, func(tx repositories.Store) error {
		if _, err := s.engine.RequireAuthor(ctx, tx.Users(), createCommand.UserID); err != nil {
			return err
		}

		tags, err := s.catalog.Resolve(ctx, tx.Tags(), createCommand.Tags)
		if err != nil {
			return err
		}

		newPost := entities.NewPost(
			createCommand.UserID,
			createCommand.Title,
			createCommand.Content,
			createCommand.Level,
			createCommand.Category,
			s.clock(),
		)
		newPost.SetTags(tags)

		validatedPost, err := entities.NewValidatedPost(newPost)
		if err != nil {
			return err
		}

		createdPost, err = tx.Posts().Create(ctx, validatedPost)
		return err
	})
	if err != nil {
		s.idempotency.release(ctx, createCommand.IdempotencyKey)
		return nil, err
	}

	result = command.CreatePostCommandResult{
		Result: mapper.NewPostResultFromEntity(createdPost),
	}
	s.idempotency.complete(ctx, createCommand.IdempotencyKey, createCommand, result)
	publish(ctx, s.publisher, interfaces.SubjectPostCreated, result.Result)

	return &result, nil
}

// UpdatePost replaces every writable field of a post, including its tag set.
func (s *PostService) UpdatePost(ctx context.Context, updateCommand *command.UpdatePostCommand) (*command.UpdatePostCommandResult, error) {
	if err := updateCommand.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, updateCommand.ID, func(tx repositories.Store, post *entities.Post) (consistency.PostChange, error) {
		return s.engine.ReplacePost(ctx, tx.Users(), post, updateCommand.Replacement())
	})
}

// PatchPost changes only the supplied fields. Supplied tags replace the
// current tag set; omitted tags leave it untouched.
func (s *PostService) PatchPost(ctx context.Context, patchCommand *command.PatchPostCommand) (*command.UpdatePostCommandResult, error) {
	if err := patchCommand.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, patchCommand.ID, func(_ repositories.Store, post *entities.Post) (consistency.PostChange, error) {
		return s.engine.MergePost(post, patchCommand.Patch())
	})
}

type mergeFunc func(tx repositories.Store, post *entities.Post) (consistency.PostChange, error)

func (s *PostService) update(ctx context.Context, id uint, merge mergeFunc) (*command.UpdatePostCommandResult, error) {
	var updatedPost *entities.Post
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().FindById(ctx, id)
		if err != nil {
			return err
		}
		if post == nil {
			return entities.NewNotFoundError("post", id)
		}

		change, err := merge(tx, post)
		if err != nil {
			return err
		}

		if change.ReplaceTags {
			tags, err := s.catalog.Resolve(ctx, tx.Tags(), change.TagNames)
			if err != nil {
				return err
			}
			post.SetTags(tags)
		}

		validatedPost, err := entities.NewValidatedPost(post)
		if err != nil {
			return err
		}

		if len(change.Fields) > 0 {
			if err := tx.Posts().Update(ctx, validatedPost, change.Fields...); err != nil {
				return err
			}
		}
		if change.ReplaceTags {
			if err := tx.Posts().ReplaceTags(ctx, post.ID, post.Tags); err != nil {
				return err
			}
		}

		updatedPost, err = tx.Posts().FindById(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := command.UpdatePostCommandResult{
		Result: mapper.NewPostResultFromEntity(updatedPost),
	}
	publish(ctx, s.publisher, interfaces.SubjectPostUpdated, result.Result)

	return &result, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().FindById(ctx, id)
		if err != nil {
			return err
		}
		if post == nil {
			return entities.NewNotFoundError("post", id)
		}
		return tx.Posts().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, interfaces.SubjectPostDeleted, map[string]uint{"id": id})
	return nil
}

func (s *PostService) FindPostById(ctx context.Context, id uint) (*query.PostQueryResult, error) {
	post, err := s.store.Posts().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entities.NewNotFoundError("post", id)
	}

	result := query.PostQueryResult{
		Result: mapper.NewPostResultFromEntity(post),
	}

	return &result, nil
}

func (s *PostService) ListPosts(ctx context.Context) (*query.PostQueryListResult, error) {
	posts, err := s.store.Posts().List(ctx, repositories.PostFilter{})
	if err != nil {
		return nil, err
	}

	result := query.PostQueryListResult{
		Result: mapper.NewPostResultsFromEntities(posts),
	}

	return &result, nil
}

// ListUserPosts fails with a NotFoundError for an unknown user rather than
// returning an empty list. Both reads run outside a transaction; a user
// deleted in between yields an empty list.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint) (*query.PostQueryListResult, error) {
	if _, err := s.engine.RequireAuthor(ctx, s.store.Users(), userID); err != nil {
		return nil, err
	}

	posts, err := s.store.Posts().List(ctx, repositories.PostFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	result := query.PostQueryListResult{
		Result: mapper.NewPostResultsFromEntities(posts),
	}

	return &result, nil
}

func (s *PostService) ListTags(ctx context.Context) (*query.TagQueryListResult, error) {
	tags, err := s.catalog.List(ctx, s.store.Tags())
	if err != nil {
		return nil, err
	}

	result := query.TagQueryListResult{
		Result: mapper.NewTagResultsFromEntities(tags),
	}

	return &result, nil
}
