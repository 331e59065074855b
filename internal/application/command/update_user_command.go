package command

import (
	"blog-service/internal/application/common"
	"blog-service/internal/domain/entities"
)

// UpdateUserCommand is a sparse update: nil fields are left unchanged.
type UpdateUserCommand struct {
	ID       uint    `json:"-"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=120"`
}

func (c *UpdateUserCommand) Validate() error {
	return Validate(c)
}

func (c *UpdateUserCommand) Patch() entities.UserPatch {
	return entities.UserPatch{Username: c.Username, Email: c.Email}
}

type UpdateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
