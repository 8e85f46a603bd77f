// Package handlers defines HTTP-layer error codes used across all API
// endpoints. These constants give clients a stable, machine-readable error
// taxonomy alongside the human-readable messages. Handlers pick the most
// specific matching code and pass it to `fail()` with the HTTP status.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeAlreadyCheckedIn  = "already_checked_in"
	ErrCodeNotCheckedIn      = "not_checked_in"
	ErrCodeAlreadyCheckedOut = "already_checked_out"
	ErrCodeAlreadyDecided    = "already_decided"
	ErrCodeSelfDelete        = "self_delete_forbidden"
	ErrCodeCreateFailed      = "create_failed"
	ErrCodeListFailed        = "list_failed"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
)
