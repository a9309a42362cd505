// Package domain defines the persistence models for the per-user media
// library: watchlist entries and watch-history entries. These types are
// mapped with GORM and form the core data layer of the application.
//
// Both tables store thin pointer rows only — a catalog media reference plus
// a timestamp. Rich metadata (title, artwork, rating, synopsis) is never
// persisted here; it is joined in at read time from the catalog client.
package domain

import "time"

// MediaType distinguishes the two catalog namespaces a library entry can
// point into. A movie and a TV show may share the same numeric catalog ID,
// so the type is part of the reference.
type MediaType string

const (
	// MediaTypeMovie identifies a feature film in the catalog.
	MediaTypeMovie MediaType = "movie"
	// MediaTypeTV identifies a television show in the catalog.
	MediaTypeTV MediaType = "tv"
)

// Valid reports whether m is one of the supported media types.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// WatchlistEntry is a single item a user has saved to watch later.
//
// Fields:
//   - ID: stable UUID primary key (char(36)), assigned on insert and never
//     reused after deletion.
//   - UserID: owning user identifier; immutable once set.
//   - MediaID: numeric identifier of the referenced catalog item.
//   - MediaType: "movie" or "tv" (enforced by DB constraint).
//   - AddedAt: when the item entered the watchlist; refreshed when the same
//     item is added again (upsert), so re-adds float back to the top.
//
// At most one row may exist per (user_id, media_id, media_type) triple,
// enforced by the composite unique index ux_watchlist_user_media. An insert
// that collides with an existing row updates it in place instead of failing.
type WatchlistEntry struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_watchlist_user_media,priority:1"`
	MediaID   int64     `json:"media_id"   gorm:"not null;uniqueIndex:ux_watchlist_user_media,priority:2"`
	MediaType MediaType `json:"media_type" gorm:"type:varchar(8);not null;uniqueIndex:ux_watchlist_user_media,priority:3;check:media_type IN ('movie','tv')"`
	AddedAt   time.Time `json:"added_at"   gorm:"not null;index:idx_watchlist_user_added"`
}

// TableName returns the database table name for WatchlistEntry.
func (WatchlistEntry) TableName() string { return "user_watchlist" }

// HistoryEntry records that a user watched a catalog item. Re-watching the
// same item refreshes WatchedAt on the existing row rather than appending a
// second one.
//
// Uniqueness is on (user_id, media_id) only — media type is deliberately NOT
// part of the key, matching the behavior this table has always had. A movie
// and a TV show sharing a numeric catalog ID therefore occupy one history
// slot, while they would hold two watchlist slots. See DESIGN.md.
type HistoryEntry struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_history_user_media,priority:1"`
	MediaID   int64     `json:"media_id"   gorm:"not null;uniqueIndex:ux_history_user_media,priority:2"`
	MediaType MediaType `json:"media_type" gorm:"type:varchar(8);not null;check:media_type IN ('movie','tv')"`
	WatchedAt time.Time `json:"watched_at" gorm:"not null;index:idx_history_user_watched"`
}

// TableName returns the database table name for HistoryEntry.
func (HistoryEntry) TableName() string { return "user_history" }
