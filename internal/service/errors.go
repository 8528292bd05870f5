package service

import (
	"errors"
	"fmt"

	"complaint-service/internal/repository"
	"complaint-service/internal/store"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidState     = errors.New("operation not allowed in current status")
	ErrAlreadyAppealed  = errors.New("appeal already raised")
	ErrStoreFailure     = errors.New("complaint store unavailable")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps repository and store errors onto the service error kinds.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrStoreFailure):
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	default:
		return err
	}
}
