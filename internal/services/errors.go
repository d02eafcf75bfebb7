package services

import (
	"errors"
	"fmt"

	"inventory/internal/repositories"
	pkgerrors "inventory/pkg/errors"
)

// storeError classifies a repository error. Missing rows become not-found
// errors described by format; everything else is internal.
func storeError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return pkgerrors.NotFound(format, args...)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("store failure: "+format, args...))
}
