// Package handlers defines HTTP-layer error codes used across all API
// endpoints. The codes are stable, machine-readable strings returned next
// to the HTTP status so clients can branch without parsing messages.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeAddFailed        = "add_failed"
	ErrCodeRemoveFailed     = "remove_failed"
	ErrCodeToggleFailed     = "toggle_failed"
	ErrCodeClearFailed      = "clear_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeLookupFailed     = "lookup_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
