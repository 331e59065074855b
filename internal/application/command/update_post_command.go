package command

import (
	"blog-service/internal/application/common"
	"blog-service/internal/domain/entities"
)

// UpdatePostCommand replaces every writable field of a post.
type UpdatePostCommand struct {
	ID       uint              `json:"-"`
	UserID   uint              `json:"user_id" validate:"required"`
	Title    string            `json:"title" validate:"required,min=2,max=100"`
	Content  string            `json:"content" validate:"required,min=2"`
	Level    entities.Level    `json:"level" validate:"required"`
	Category entities.Category `json:"category" validate:"required"`
	Tags     []string          `json:"tags" validate:"required"`
}

func (c *UpdatePostCommand) Validate() error {
	return Validate(c)
}

func (c *UpdatePostCommand) Replacement() entities.PostReplacement {
	return entities.PostReplacement{
		UserID:   c.UserID,
		Title:    c.Title,
		Content:  c.Content,
		Level:    c.Level,
		Category: c.Category,
		Tags:     c.Tags,
	}
}

type UpdatePostCommandResult struct {
	Result *common.PostResult `json:"result"`
}
