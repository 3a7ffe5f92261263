package services

// The three failure classes the handlers map onto HTTP statuses: validation
// failures and conflicts render 400, a missing primary resource renders 404,
// and a missing referenced resource (foreign key) renders 400.

type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }

type NotFoundError struct {
	resource string
	foreign  bool
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{resource: resource}
}

// NewForeignNotFoundError marks a missing entity that was only referenced by
// the request, not addressed by it.
func NewForeignNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{resource: resource, foreign: true}
}

func (e *NotFoundError) Error() string { return e.resource + " not found" }

// Foreign reports whether the missing entity was a referenced foreign
// entity rather than the primary resource of the request.
func (e *NotFoundError) Foreign() bool { return e.foreign }

type ConflictError struct {
	msg string
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{msg: msg}
}

func (e *ConflictError) Error() string { return e.msg }
