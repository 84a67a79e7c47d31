package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shop/internal/models"
)

// newestFirst orders image rows for gallery display.
const newestFirst = "created_at DESC, id DESC"

// translateError maps driver constraint errors onto the catalog error kinds.
// The database only reports these when a concurrent writer slipped past the
// explicit checks; fkErr selects the kind a foreign key violation stands for.
func translateError(op string, err error, fkErr error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, models.ErrUniqueness)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, fkErr)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
