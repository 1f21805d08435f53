// Package errs provides standardized error types for the parcel service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes one error type per failure class of the lifecycle core:
//   - ObjectNotFoundError: a referenced parcel, rider or user is absent
//   - ValueIsRequiredError: a required input is missing
//   - ValueIsInvalidError: a value is present but not recognised (e.g. a status string)
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed range
//   - VersionIsInvalidError: a compare-and-set write lost against a concurrent change
//   - InvalidTransitionError: a state machine move is not allowed from the current state
//   - PartialFailureError: a multi-write operation stopped after at least one write
//   - StoreUnavailableError: the entity store failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels and read the
// details with errors.As.
package errs
