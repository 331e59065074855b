package interfaces

import (
	"context"

	"blog-service/internal/application/command"
	"blog-service/internal/application/query"
)

type UserService interface {
	CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error)
	UpdateUser(ctx context.Context, updateCommand *command.UpdateUserCommand) (*command.UpdateUserCommandResult, error)
	DeleteUser(ctx context.Context, id uint) error
	FindUserById(ctx context.Context, id uint) (*query.UserQueryResult, error)
	ListUsers(ctx context.Context) (*query.UserQueryListResult, error)
}
