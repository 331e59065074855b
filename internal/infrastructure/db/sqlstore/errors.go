package sqlstore

import (
	"errors"

	"blog-service/internal/domain/entities"
	"gorm.io/gorm"
)

// translateError turns constraint violations into domain errors. field names
// the column(s) whose constraint the statement could have violated.
func translateError(err error, entity, field string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return entities.NewConflictError(entity, field, "")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return entities.NewValidationError(field, "references a missing entity")
	default:
		return err
	}
}
