package command

import "blog-service/internal/application/common"

type CreateUserCommand struct {
	Username       string `json:"username" validate:"required,min=2,max=50"`
	Email          string `json:"email" validate:"required,email,max=120"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

func (c *CreateUserCommand) Validate() error {
	return Validate(c)
}

type CreateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
