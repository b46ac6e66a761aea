/*
Package errors provides semantic error types for the entity mapper and its stores.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("entity not found")
	    ErrAlreadyExists   = errors.New("entity already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrUnsupportedType   = errors.New("unsupported field type")
	    ErrReflectionAccess  = errors.New("reflection access failed")
	    ErrNarrowingOverflow = errors.New("integer narrowing overflow")
	    ErrInstantiation     = errors.New("cannot instantiate type")
	    ErrMissingID         = errors.New("missing entity id")
	)

The mapping errors (UnsupportedTypeError, ReflectionAccessError,
NarrowingOverflowError) are not returned by the mapper directly; they are
attached to per-field diagnostics so one bad field never aborts the others.

Usage:

	// Check error type
	user, err := repo.FindByID(ctx, 123)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("user %s does not exist", "123")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "123")
	err := errors.NewUnsupportedTypeError("scores", "[]float64", "")
	err := errors.NewMissingIDError("User")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors