package entities

import "github.com/go-playground/validator/v10"

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())
