package command

import (
	"blog-service/internal/application/common"
	"blog-service/internal/domain/entities"
)

type CreatePostCommand struct {
	UserID         uint              `json:"user_id" validate:"required"`
	Title          string            `json:"title" validate:"required,min=2,max=100"`
	Content        string            `json:"content" validate:"required,min=2"`
	Level          entities.Level    `json:"level" validate:"required"`
	Category       entities.Category `json:"category" validate:"required"`
	Tags           []string          `json:"tags"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
}

func (c *CreatePostCommand) Validate() error {
	return Validate(c)
}

type CreatePostCommandResult struct {
	Result *common.PostResult `json:"result"`
}
