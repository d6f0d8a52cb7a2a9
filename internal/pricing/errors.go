package pricing

import (
	"errors"
	"fmt"

	"github.com/Simplici0/windowquote/internal/apperror"
)

var (
	ErrInvalidDimension     = errors.New("invalid dimension")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrMissingCatalogRecord = errors.New("missing catalog record")
	ErrInvalidRate          = errors.New("invalid rate")
	ErrDuplicateLine        = errors.New("duplicate quotation line")
)

func validationError(sentinel error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return apperror.Validation(msg, fmt.Errorf("%w: %s", sentinel, msg))
}

func invalidDimension(format string, args ...any) error {
	return validationError(ErrInvalidDimension, format, args...)
}

func invalidQuantity(format string, args ...any) error {
	return validationError(ErrInvalidQuantity, format, args...)
}

func invalidRate(format string, args ...any) error {
	return validationError(ErrInvalidRate, format, args...)
}

// MissingRecord reports a profile or glass record that could not be
// resolved. Catalog lookups return it as well.
func MissingRecord(kind, id string) error {
	msg := fmt.Sprintf("%s %q not found", kind, id)
	if id == "" {
		msg = kind + " is required"
	}
	return apperror.NotFound(msg, fmt.Errorf("%w: %s", ErrMissingCatalogRecord, msg))
}
