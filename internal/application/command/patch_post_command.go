package command

import (
	"blog-service/internal/domain/entities"
)

// PatchPostCommand is a sparse post update: nil fields are left unchanged.
// Tags, when present, replace the post's whole tag set.
type PatchPostCommand struct {
	ID       uint               `json:"-"`
	Title    *string            `json:"title,omitempty" validate:"omitempty,min=2,max=100"`
	Content  *string            `json:"content,omitempty" validate:"omitempty,min=2"`
	Level    *entities.Level    `json:"level,omitempty"`
	Category *entities.Category `json:"category,omitempty"`
	Tags     *[]string          `json:"tags,omitempty"`
}

func (c *PatchPostCommand) Validate() error {
	return Validate(c)
}

func (c *PatchPostCommand) Patch() entities.PostPatch {
	return entities.PostPatch{
		Title:    c.Title,
		Content:  c.Content,
		Level:    c.Level,
		Category: c.Category,
		Tags:     c.Tags,
	}
}
