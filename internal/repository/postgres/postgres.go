package postgres

import (
	"errors"
	"solestride/domain"

	"gorm.io/gorm"
)

// translateError maps gorm errors onto the domain error classes so
// services never see driver details. Requires gorm's TranslateError mode
// so unique violations arrive as gorm.ErrDuplicatedKey.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateID
	}

	return err
}
