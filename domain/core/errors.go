package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnknownCategory  = fmt.Errorf("%w: phenomenon", ErrNotFound)
	ErrUnknownParameter = fmt.Errorf("%w: parameter", ErrNotFound)

	// Validation errors surfaced inline on the form
	ErrNoCategory        = errors.New("please select a phenomenon before submitting")
	ErrMissingEmail      = errors.New("please enter an email address to receive the data set")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrInactiveParameter = errors.New("parameter is not used by the selected phenomenon")

	// Configuration errors
	ErrInvalidCatalog = errors.New("invalid phenomenon catalog")
	ErrUnmappedField  = errors.New("no external field identifier configured")
)

// NewUnknownCategoryError names the category that could not be found
func NewUnknownCategoryError(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
}

// NewUnknownParameterError names the parameter that could not be found
func NewUnknownParameterError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// NewInactiveParameterError names the parameter and the category it was set against
func NewInactiveParameterError(name, category string) error {
	if category == "" {
		return fmt.Errorf("%w: %s (no phenomenon selected)", ErrInactiveParameter, name)
	}
	return fmt.Errorf("%w: %s is not a control of %s", ErrInactiveParameter, name, category)
}

// NewCatalogError describes a catalog defect
func NewCatalogError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}

// NewUnmappedFieldError names the semantic field without an external identifier
func NewUnmappedFieldError(name string) error {
	return fmt.Errorf("%w for %q", ErrUnmappedField, name)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a user-correctable form error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoCategory) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInactiveParameter) ||
		errors.Is(err, ErrUnknownParameter)
}

// IsConfigurationError reports whether err comes from catalog or field-map configuration
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidCatalog) || errors.Is(err, ErrUnmappedField)
}
