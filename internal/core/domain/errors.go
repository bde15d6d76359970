package domain

import "errors"

// Sentinel errors shared by every entity module. Services wrap them with
// context using fmt.Errorf("...: %w", err); the HTTP layer maps them with
// errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
)

var (
	ErrUserNotFound    = wrapKind(ErrNotFound, "user not found")
	ErrUserExists      = wrapKind(ErrConflict, "user already exists")
	ErrFacultyNotFound = wrapKind(ErrNotFound, "academic faculty not found")
	ErrFacultyExists   = wrapKind(ErrConflict, "academic faculty already exists")
	ErrInvalidID       = wrapKind(ErrValidation, "invalid id")
	ErrRequestInFlight = wrapKind(ErrConflict, "a request with this idempotency key is still in progress")
)

// kindError carries its own message while still matching its category via
// errors.Is, so ErrUserNotFound is both itself and ErrNotFound.
type kindError struct {
	kind error
	msg  string
}

func wrapKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// FieldError describes one invalid input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError is returned when input fails domain rules. It unwraps to
// ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Path: path, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return e.Fields[0].Path + ": " + e.Fields[0].Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
