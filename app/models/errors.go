package models

// Error taxonomy for the finance core. Handlers map these to HTTP statuses:
// ValidationError -> 400, NotFoundError -> 404, AlreadyValidatedError -> 400,
// StorageError -> 500.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// AlreadyValidatedError signals an attempt to re-close a finalized
// accounting day. Validated days are immutable.
type AlreadyValidatedError struct {
	Date string
}

func (e *AlreadyValidatedError) Error() string {
	return "accounting for " + e.Date + " has already been validated"
}

// StorageError wraps an unexpected failure from the database layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
