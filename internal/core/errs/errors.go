// Package errs holds the sentinel errors shared across layers.
package errs

// ConstError is a string error type that can be declared as a constant.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// Sentinel errors for the domain layer.
// Lower layers (loaders, paging, node identification) wrap these so that the
// API layer can map them to client-facing codes without knowing the details.
const (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound ConstError = "resource not found"

	// ErrInvalidInput is returned when the input provided is invalid.
	ErrInvalidInput ConstError = "invalid input"

	// ErrSystem is returned when an unexpected system error occurs.
	ErrSystem ConstError = "system error"

	// ErrUnauthorized is returned when the caller is not authorized to perform the action.
	ErrUnauthorized ConstError = "unauthorized"

	// ErrUnavailable is returned when a backend cannot be reached or answers with a server error.
	ErrUnavailable ConstError = "backend unavailable"
)
