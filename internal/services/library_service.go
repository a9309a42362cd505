// Package services – LibraryService
//
// This file implements the generic library service shared by the watchlist
// and history domains. It validates input, delegates persistence to the
// generic repository descriptor, and runs the enrichment join on reads.
// The watchlist- and history-specific wrappers add their domain verbs on
// top (see watchlist_service.go and history_service.go).
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/screenlog/go-library-backend/internal/catalog"
	"github.com/screenlog/go-library-backend/internal/domain"
	"github.com/screenlog/go-library-backend/internal/repo"
)

// defaultLookupTimeout bounds each per-item catalog lookup during the
// enrichment join. A lookup that exceeds it is dropped like any other
// failed lookup rather than holding up the whole list.
const defaultLookupTimeout = 5 * time.Second

// LibraryService provides the operations shared by both library domains.
// It is parameterized by the entry type; the repository descriptor carries
// the per-domain differences (conflict key, timestamp column).
type LibraryService[T domain.Referable] struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Domain is the repository descriptor for this service's table.
	Domain repo.Domain[T]
	// Catalog resolves media references to metadata on reads.
	Catalog catalog.Client
	// LookupTimeout bounds each per-item catalog lookup; zero disables the
	// per-item deadline and leaves only the client's own transport timeout.
	LookupTimeout time.Duration
}

// List returns the user's entries, most recent first, each joined with its
// catalog metadata. Entries whose lookup failed are omitted; the relative
// order of the rest is unchanged. A listing with dropped entries is not an
// error — only a store failure is.
func (s *LibraryService[T]) List(ctx context.Context, userID string) ([]Enriched[T], error) {
	entries, err := s.Domain.ListForUser(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	return enrichEntries(ctx, s.Catalog, entries, s.LookupTimeout), nil
}

// Add upserts an entry for the given media reference. Adding an item that
// is already present refreshes its timestamp; no duplicate is created.
func (s *LibraryService[T]) Add(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (*T, error) {
	if err := validateRef(mediaID, mt); err != nil {
		return nil, err
	}
	return s.Domain.Add(ctx, s.DB, userID, mediaID, mt)
}

// Remove deletes the entry matching the domain key. Removing an absent
// entry is a successful no-op.
func (s *LibraryService[T]) Remove(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) error {
	if err := validateRef(mediaID, mt); err != nil {
		return err
	}
	return s.Domain.Remove(ctx, s.DB, userID, mediaID, mt)
}

// RemoveByID deletes one entry by its surrogate key. Used when the caller
// already holds the row (from a rendered list) and wants to avoid
// re-deriving the media reference. Missing or foreign rows are no-ops.
func (s *LibraryService[T]) RemoveByID(ctx context.Context, userID, id string) error {
	return s.Domain.RemoveByID(ctx, s.DB, userID, id)
}

// Clear deletes every entry the user owns in one atomic statement.
func (s *LibraryService[T]) Clear(ctx context.Context, userID string) error {
	return s.Domain.ClearForUser(ctx, s.DB, userID)
}

// Count returns the number of entries the user owns.
func (s *LibraryService[T]) Count(ctx context.Context, userID string) (int64, error) {
	return s.Domain.CountForUser(ctx, s.DB, userID)
}

// validateRef rejects malformed media references before they reach the
// store.
func validateRef(mediaID int64, mt domain.MediaType) error {
	if mediaID <= 0 {
		return ErrInvalidMediaID
	}
	if !mt.Valid() {
		return ErrInvalidMediaType
	}
	return nil
}
