package services

import (
	"context"

	"blog-service/internal/application/command"
	"blog-service/internal/application/interfaces"
	"blog-service/internal/application/mapper"
	"blog-service/internal/application/query"
	"blog-service/internal/domain/consistency"
	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
)

type UserService struct {
	store       repositories.Store
	engine      *consistency.Engine
	idempotency idempotency
	publisher   interfaces.EventPublisher
}

func NewUserService(
	store repositories.Store,
	engine *consistency.Engine,
	idempotencyRepo repositories.IdempotencyRepository,
	publisher interfaces.EventPublisher,
) interfaces.UserService {
	return &UserService{
		store:       store,
		engine:      engine,
		idempotency: idempotency{repo: idempotencyRepo},
		publisher:   publisher,
	}
}

func (s *UserService) CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	if err := createCommand.Validate(); err != nil {
		return nil, err
	}

	var result command.CreateUserCommandResult
	replayed, err := s.idempotency.reserve(ctx, createCommand.IdempotencyKey, createCommand, &result)
	if err != nil {
		return nil, err
	}
	if replayed {
		return &result, nil
	}

	var createdUser *entities.User
	err = s.store.RunInTx(ctx, func(tx repositories.Store) error {
		newUser := entities.NewUser(createCommand.Username, createCommand.Email)
		validatedUser, err := entities.NewValidatedUser(newUser)
		if err != nil {
			return err
		}
		if err := s.engine.CheckNewUser(ctx, tx.Users(), newUser); err != nil {
			return err
		}

		createdUser, err = tx.Users().Create(ctx, validatedUser)
		return err
	})
	if err != nil {
		s.idempotency.release(ctx, createCommand.IdempotencyKey)
		return nil, err
	}

	result = command.CreateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}
	s.idempotency.complete(ctx, createCommand.IdempotencyKey, createCommand, result)
	publish(ctx, s.publisher, interfaces.SubjectUserCreated, result.Result)

	return &result, nil
}

func (s *UserService) UpdateUser(ctx context.Context, updateCommand *command.UpdateUserCommand) (*command.UpdateUserCommandResult, error) {
	if err := updateCommand.Validate(); err != nil {
		return nil, err
	}

	var updatedUser *entities.User
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		user, err := tx.Users().FindById(ctx, updateCommand.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return entities.NewNotFoundError("user", updateCommand.ID)
		}

		patch := updateCommand.Patch()
		if err := s.engine.CheckUserPatch(ctx, tx.Users(), user, patch); err != nil {
			return err
		}

		fields := s.engine.MergeUser(user, patch)
		validatedUser, err := entities.NewValidatedUser(user)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			updatedUser = user
			return nil
		}

		updatedUser, err = tx.Users().Update(ctx, validatedUser, fields...)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := command.UpdateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(updatedUser),
	}
	publish(ctx, s.publisher, interfaces.SubjectUserUpdated, result.Result)

	return &result, nil
}

// DeleteUser removes the user together with every post it authored.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	err := s.store.RunInTx(ctx, func(tx repositories.Store) error {
		user, err := tx.Users().FindById(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return entities.NewNotFoundError("user", id)
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, interfaces.SubjectUserDeleted, map[string]uint{"id": id})
	return nil
}

func (s *UserService) FindUserById(ctx context.Context, id uint) (*query.UserQueryResult, error) {
	user, err := s.store.Users().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entities.NewNotFoundError("user", id)
	}

	result := query.UserQueryResult{
		Result: mapper.NewUserResultFromEntity(user),
	}

	return &result, nil
}

func (s *UserService) ListUsers(ctx context.Context) (*query.UserQueryListResult, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}

	result := query.UserQueryListResult{
		Result: mapper.NewUserResultsFromEntities(users),
	}

	return &result, nil
}
