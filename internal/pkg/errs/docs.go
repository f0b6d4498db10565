// Package errs provides standardized error types for the canteen ordering
// engine. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The package covers the engine's error taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     caller-fixable validation failures (empty cart, non-positive quantity,
//     disallowed payment mode)
//   - ObjectNotFoundError: a referenced menu item or order does not exist
//   - ConflictError: the request conflicts with current state (inactive item,
//     insufficient stock, illegal status transition)
//   - AuthorizationError: the requester may not read or mutate the resource
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict) usable with errors.Is
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// Storage failures are not a dedicated type here; they surface as wrapped
// driver or commit errors from the persistence layer and map to an internal
// error at the transport boundary.
package errs
