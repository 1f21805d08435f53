// Package pgerr maps database driver failures onto the lifecycle error
// taxonomy shared by the postgres adapters.
package pgerr

import (
	"errors"

	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// Wrap classifies err for operation. A missing row becomes
// errs.ObjectNotFoundError for entity and id; anything else is reported as
// errs.StoreUnavailableError so callers can tell a failed collaborator from a
// business rejection.
func Wrap(operation, entity string, id any, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundError(entity, id)
	default:
		return errs.NewStoreUnavailableError(operation, err)
	}
}

// Unavailable wraps a failure that cannot be a missing row.
func Unavailable(operation string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewStoreUnavailableError(operation, err)
}
