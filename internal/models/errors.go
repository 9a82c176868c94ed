package models

import (
	"errors"
	"fmt"
)

// ErrValidation marks errors caused by invalid client input.
var ErrValidation = errors.New("validation failed")

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
