package database

import (
	"errors"

	"yatube/internal/core/apperr"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the shared error kinds. The database must be
// opened with TranslateError for duplicate keys to be recognised.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict
	default:
		return err
	}
}
