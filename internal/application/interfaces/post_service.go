package interfaces

import (
	"context"

	"blog-service/internal/application/command"
	"blog-service/internal/application/query"
)

type PostService interface {
	CreatePost(ctx context.Context, createCommand *command.CreatePostCommand) (*command.CreatePostCommandResult, error)
	UpdatePost(ctx context.Context, updateCommand *command.UpdatePostCommand) (*command.UpdatePostCommandResult, error)
	PatchPost(ctx context.Context, patchCommand *command.PatchPostCommand) (*command.UpdatePostCommandResult, error)
	DeletePost(ctx context.Context, id uint) error
	FindPostById(ctx context.Context, id uint) (*query.PostQueryResult, error)
	ListPosts(ctx context.Context) (*query.PostQueryListResult, error)
	ListUserPosts(ctx context.Context, userID uint) (*query.PostQueryListResult, error)
	ListTags(ctx context.Context) (*query.TagQueryListResult, error)
}
