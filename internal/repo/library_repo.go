// Package repo implements the data persistence layer for the user library,
// backed by GORM. This file provides the generic repository shared by the
// watchlist and history tables.
//
// The two tables carry the same shape of row but differ in three ways: the
// conflict target of their upsert (watchlist is unique per user/media/type,
// history per user/media only), the name of the timestamp column, and how a
// key lookup filters rows. Rather than duplicating near-identical CRUD per
// table, those differences are captured in a Domain descriptor and every
// operation is written once against it.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - Removals of absent rows are successful no-ops, not errors.
//   - On DB errors (constraint violations other than the expected upsert
//     conflict, connectivity issues, etc.), the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/screenlog/go-library-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// Domain binds the generic library operations to one concrete table. The
// zero value is unusable; use the exported Watchlist and History descriptors.
type Domain[T any] struct {
	// conflict is the composite uniqueness key targeted by Add's upsert.
	conflict []clause.Column
	// tsColumn is the timestamp column refreshed on upsert conflict and
	// used for descending retrieval order.
	tsColumn string
	// newEntry builds a fresh row with a newly assigned surrogate key.
	newEntry func(userID string, mediaID int64, mt domain.MediaType, now time.Time) T
	// byKey narrows a query to the row(s) matching the domain's uniqueness
	// key. History ignores the media type here, mirroring its key shape.
	byKey func(tx *gorm.DB, userID string, mediaID int64, mt domain.MediaType) *gorm.DB
}

// Watchlist is the repository descriptor for the user_watchlist table.
// Its key is the full (user_id, media_id, media_type) triple.
var Watchlist = Domain[domain.WatchlistEntry]{
	conflict: []clause.Column{{Name: "user_id"}, {Name: "media_id"}, {Name: "media_type"}},
	tsColumn: "added_at",
	newEntry: func(userID string, mediaID int64, mt domain.MediaType, now time.Time) domain.WatchlistEntry {
		return domain.WatchlistEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			MediaID:   mediaID,
			MediaType: mt,
			AddedAt:   now,
		}
	},
	byKey: func(tx *gorm.DB, userID string, mediaID int64, mt domain.MediaType) *gorm.DB {
		return tx.Where("user_id = ? AND media_id = ? AND media_type = ?", userID, mediaID, mt)
	},
}

// History is the repository descriptor for the user_history table. Its key
// is (user_id, media_id) only; the media type is stored but not part of the
// key (see domain.HistoryEntry).
var History = Domain[domain.HistoryEntry]{
	conflict: []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
	tsColumn: "watched_at",
	newEntry: func(userID string, mediaID int64, mt domain.MediaType, now time.Time) domain.HistoryEntry {
		return domain.HistoryEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			MediaID:   mediaID,
			MediaType: mt,
			WatchedAt: now,
		}
	},
	byKey: func(tx *gorm.DB, userID string, mediaID int64, _ domain.MediaType) *gorm.DB {
		return tx.Where("user_id = ? AND media_id = ?", userID, mediaID)
	},
}

// Add upserts a row for (userID, mediaID, mt) keyed by the domain's
// uniqueness constraint. If the row already exists its timestamp is
// refreshed in place; no duplicate is ever created and the original
// surrogate key survives. The persisted row is returned in either case.
func (d Domain[T]) Add(ctx context.Context, db *gorm.DB, userID string, mediaID int64, mt domain.MediaType) (*T, error) {
	now := time.Now().UTC()
	e := d.newEntry(userID, mediaID, mt, now)
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   d.conflict,
			DoUpdates: clause.Assignments(map[string]any{d.tsColumn: now}),
		}).
		Create(&e).Error
	if err != nil {
		return nil, err
	}
	// Re-read: on conflict the freshly generated ID above was discarded in
	// favor of the existing row's key.
	var out T
	if err := d.byKey(db.WithContext(ctx), userID, mediaID, mt).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Exists reports whether a row matching the domain's key is present.
func (d Domain[T]) Exists(ctx context.Context, db *gorm.DB, userID string, mediaID int64, mt domain.MediaType) (bool, error) {
	var model T
	var n int64
	err := d.byKey(db.WithContext(ctx).Model(&model), userID, mediaID, mt).Count(&n).Error
	return n > 0, err
}

// Remove deletes the row matching the domain's key. Removing an absent row
// is a successful no-op. On DB error, it returns the error.
func (d Domain[T]) Remove(ctx context.Context, db *gorm.DB, userID string, mediaID int64, mt domain.MediaType) error {
	var model T
	return d.byKey(db.WithContext(ctx), userID, mediaID, mt).Delete(&model).Error
}

// RemoveByID deletes a single row by surrogate key, scoped to the owning
// user so one user cannot delete another's rows by guessing IDs. A missing
// or foreign row is a successful no-op.
func (d Domain[T]) RemoveByID(ctx context.Context, db *gorm.DB, userID, id string) error {
	var model T
	return db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model).Error
}

// ListForUser returns all rows for userID ordered by the domain timestamp
// descending (most recent first). It returns an empty slice if the user has
// no rows. On DB error, it returns the error.
func (d Domain[T]) ListForUser(ctx context.Context, db *gorm.DB, userID string) ([]T, error) {
	var out []T
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(d.tsColumn + " desc").
		Find(&out).Error
	return out, err
}

// CountForUser returns the number of rows userID owns.
func (d Domain[T]) CountForUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var model T
	var n int64
	err := db.WithContext(ctx).
		Model(&model).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// ClearForUser deletes every row owned by userID in a single statement, so
// the clear is atomic: it either removes all rows or, on error, none.
// Clearing an empty table is a successful no-op.
func (d Domain[T]) ClearForUser(ctx context.Context, db *gorm.DB, userID string) error {
	var model T
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model).Error
}
