package labelkit

import "errors"

var (
	// ErrBaseURLRequired is returned by Build when no API base URL was
	// configured.
	ErrBaseURLRequired = errors.New("api base url required")
	// ErrStoreRequired is returned by Build when neither a credential
	// store nor a Redis client was provided.
	ErrStoreRequired = errors.New("credential store required")
	// ErrBuilderUsed is returned when Build is called twice on the same
	// builder.
	ErrBuilderUsed = errors.New("builder already used")
)
