package formstate

import "errors"

var (
	// ErrIndexOutOfRange is returned by positional store operations.
	ErrIndexOutOfRange = errors.New("section index out of range")

	// ErrSectionNotFound means no section with the given template id exists.
	ErrSectionNotFound = errors.New("section not found")

	// ErrFieldNotFound means the named field does not exist in the section.
	ErrFieldNotFound = errors.New("field not found in section")

	// ErrNoAvailableOptions refuses a duplication that would produce a
	// required selector with an empty option pool.
	ErrNoAvailableOptions = errors.New("no available item to duplicate")

	// ErrNoRule means the (form kind, field name) pair is not a driver.
	ErrNoRule = errors.New("no cascade rule for field")

	// ErrLookupFailed wraps a failed reference-data fetch. The driver field
	// has been reset; the caller should surface a retryable notification.
	ErrLookupFailed = errors.New("reference data lookup failed")
)
