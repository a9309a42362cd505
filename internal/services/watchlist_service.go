// Package services – WatchlistService
//
// The watchlist wraps the generic library service and adds the two verbs
// the UI drives it with: a membership probe ("is this saved?") and a
// toggle that flips membership in one call.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/screenlog/go-library-backend/internal/catalog"
	"github.com/screenlog/go-library-backend/internal/domain"
	"github.com/screenlog/go-library-backend/internal/repo"
)

// WatchlistService manages the user's saved-for-later list. Uniqueness is
// per (user, media id, media type): the same numeric ID can be saved once
// as a movie and once as a show.
type WatchlistService struct {
	*LibraryService[domain.WatchlistEntry]
}

// NewWatchlistService constructs a WatchlistService on the given handle and
// catalog client.
func NewWatchlistService(db *gorm.DB, c catalog.Client) *WatchlistService {
	return &WatchlistService{
		LibraryService: &LibraryService[domain.WatchlistEntry]{
			DB:            db,
			Domain:        repo.Watchlist,
			Catalog:       c,
			LookupTimeout: defaultLookupTimeout,
		},
	}
}

// Contains reports whether the media reference is currently on the user's
// watchlist.
func (s *WatchlistService) Contains(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (bool, error) {
	if err := validateRef(mediaID, mt); err != nil {
		return false, err
	}
	return s.Domain.Exists(ctx, s.DB, userID, mediaID, mt)
}

// Toggle flips the membership of a media reference: present becomes absent
// and vice versa. The returned flag reports the state after the call —
// true when the item was added.
//
// The check and the mutation are two store round-trips, not one atomic
// statement. Two concurrent toggles for the same triple can both see
// "absent" and both insert; the unique index collapses that into a single
// row (the second insert degrades to a timestamp refresh), so the worst
// visible symptom is a stale flag reported to one caller. Accepted; see
// DESIGN.md.
func (s *WatchlistService) Toggle(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (bool, error) {
	if err := validateRef(mediaID, mt); err != nil {
		return false, err
	}

	present, err := s.Domain.Exists(ctx, s.DB, userID, mediaID, mt)
	if err != nil {
		return false, err
	}
	if present {
		if err := s.Domain.Remove(ctx, s.DB, userID, mediaID, mt); err != nil {
			// Delete failed: the item is still on the list.
			return true, err
		}
		return false, nil
	}
	if _, err := s.Domain.Add(ctx, s.DB, userID, mediaID, mt); err != nil {
		return false, err
	}
	return true, nil
}
