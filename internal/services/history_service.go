// Package services – HistoryService
//
// Watch history wraps the generic library service. Its only extra verb is
// RecordWatch, fired when playback starts; re-watching refreshes the
// existing row's timestamp instead of appending a duplicate.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/screenlog/go-library-backend/internal/catalog"
	"github.com/screenlog/go-library-backend/internal/domain"
	"github.com/screenlog/go-library-backend/internal/repo"
)

// HistoryService manages the user's watch history. Unlike the watchlist,
// uniqueness here is per (user, media id) — the media type is stored for
// catalog lookups but is not part of the key.
type HistoryService struct {
	*LibraryService[domain.HistoryEntry]
}

// NewHistoryService constructs a HistoryService on the given handle and
// catalog client.
func NewHistoryService(db *gorm.DB, c catalog.Client) *HistoryService {
	return &HistoryService{
		LibraryService: &LibraryService[domain.HistoryEntry]{
			DB:            db,
			Domain:        repo.History,
			Catalog:       c,
			LookupTimeout: defaultLookupTimeout,
		},
	}
}

// RecordWatch marks a media reference as watched now. It is the history
// domain's name for Add: an upsert that refreshes WatchedAt on re-watch.
func (s *HistoryService) RecordWatch(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (*domain.HistoryEntry, error) {
	return s.Add(ctx, userID, mediaID, mt)
}
