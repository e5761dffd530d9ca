package services

import (
	"borrowtrack/internal/database"
	apperrors "borrowtrack/internal/errors"
)

// storeError maps a storage failure to the right AppError. A missing table
// means migrations were never run, which gets its own "run setup" code so
// clients can distinguish it from a transient failure.
func storeError(err error) *apperrors.AppError {
	if database.IsUndefinedTable(err) {
		return apperrors.Wrap(apperrors.ErrSchemaMissing, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
