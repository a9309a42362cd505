// Package services defines the business logic for the user library:
// watchlist and history operations plus the read-time enrichment join
// against the catalog. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrInvalidMediaType is returned when a media type is neither "movie"
	// nor "tv".
	ErrInvalidMediaType = errors.New("media type must be movie or tv")

	// ErrInvalidMediaID is returned when a catalog media id is not a
	// positive number.
	ErrInvalidMediaID = errors.New("media id must be positive")
)
