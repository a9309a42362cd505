// Library HTTP handlers.
//
// This file exposes REST endpoints for the two library resources:
//
//   - GET    /watchlist           (enriched list)
//   - POST   /watchlist           (add / upsert)
//   - POST   /watchlist/toggle    (flip membership)
//   - POST   /watchlist/remove    (remove by media reference)
//   - GET    /watchlist/contains  (membership probe)
//   - DELETE /watchlist/:id       (remove by surrogate id)
//   - DELETE /watchlist           (clear)
//   - GET    /history             (enriched list)
//   - POST   /history             (record a watch)
//   - POST   /history/remove      (remove by media reference)
//   - DELETE /history/:id         (remove by surrogate id)
//   - DELETE /history             (clear)
//
// Handlers are transport-thin: they resolve the user, validate input, call
// application services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/go-library-backend/internal/domain"
	"github.com/screenlog/go-library-backend/internal/services"
	"github.com/screenlog/go-library-backend/internal/sysutil"
)

//
// Service contracts (context-aware)
//

// WatchlistService defines the watchlist operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type WatchlistService interface {
	// List returns the user's watchlist, newest first, with metadata joined.
	List(ctx context.Context, userID string) ([]services.Enriched[domain.WatchlistEntry], error)
	// Add upserts a watchlist entry for the media reference.
	Add(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (*domain.WatchlistEntry, error)
	// Toggle flips membership and reports the resulting state.
	Toggle(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (bool, error)
	// Contains reports whether the media reference is on the watchlist.
	Contains(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (bool, error)
	// Remove deletes the entry matching the media reference (no-op if absent).
	Remove(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) error
	// RemoveByID deletes one entry by surrogate key (no-op if absent).
	RemoveByID(ctx context.Context, userID, id string) error
	// Clear deletes every watchlist entry the user owns.
	Clear(ctx context.Context, userID string) error
}

// HistoryService defines the watch-history operations consumed by HTTP
// handlers.
type HistoryService interface {
	// List returns the user's history, newest first, with metadata joined.
	List(ctx context.Context, userID string) ([]services.Enriched[domain.HistoryEntry], error)
	// RecordWatch upserts a history entry, refreshing WatchedAt on re-watch.
	RecordWatch(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) (*domain.HistoryEntry, error)
	// Remove deletes the entry matching the media reference (no-op if absent).
	Remove(ctx context.Context, userID string, mediaID int64, mt domain.MediaType) error
	// RemoveByID deletes one entry by surrogate key (no-op if absent).
	RemoveByID(ctx context.Context, userID, id string) error
	// Clear deletes every history entry the user owns.
	Clear(ctx context.Context, userID string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the watchlist, history, and
// catalog proxy. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	watchSvc WatchlistService
	histSvc  HistoryService
	catSvc   CatalogService
}

// New constructs a Handlers instance bound to the given services.
func New(watchSvc WatchlistService, histSvc HistoryService, catSvc CatalogService) *Handlers {
	return &Handlers{watchSvc: watchSvc, histSvc: histSvc, catSvc: catSvc}
}

// userID extracts the authenticated user id from Gin context (set by
// upstream auth middleware). If absent, it falls back to "X-User-ID"
// header (tests use it), and finally to "demo-user".
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	var hdr string
	if c != nil && c.Request != nil {
		hdr = c.GetHeader("X-User-ID")
	}
	return sysutil.FirstNonEmpty(hdr, "demo-user")
}

//
// DTOs
//

// EntryRequest is the JSON payload identifying a catalog item for add,
// toggle, and remove operations.
type EntryRequest struct {
	MediaID   int64  `json:"media_id"   binding:"required" example:"603"`
	MediaType string `json:"media_type" binding:"required" example:"movie"`
}

// ToggleResponse reports the watchlist state after a toggle.
type ToggleResponse struct {
	Added bool `json:"added"`
}

// ContainsResponse reports a membership probe result.
type ContainsResponse struct {
	InWatchlist bool `json:"in_watchlist"`
}

// ListResponse wraps an enriched library listing.
type ListResponse[T any] struct {
	Entries []services.Enriched[T] `json:"entries"`
	Count   int                    `json:"count"`
}

//
// Helpers
//

// bindEntry binds and lightly parses an EntryRequest. It reports false
// after writing a 400 response when the payload is malformed.
func bindEntry(c *gin.Context) (EntryRequest, domain.MediaType, bool) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "media_id and media_type are required")
		return req, "", false
	}
	return req, domain.MediaType(strings.ToLower(strings.TrimSpace(req.MediaType))), true
}

// failValidation maps service validation sentinels to a 400; everything
// else falls through to the given 5xx code.
func failValidation(c *gin.Context, err error, code string) {
	if errors.Is(err, services.ErrInvalidMediaType) || errors.Is(err, services.ErrInvalidMediaID) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	fail(c, http.StatusInternalServerError, code, "operation failed")
}

//
// Watchlist endpoints
//

// ListWatchlist handles GET /watchlist.
func (h *Handlers) ListWatchlist(c *gin.Context) {
	entries, err := h.watchSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load watchlist")
		return
	}
	ok(c, http.StatusOK, ListResponse[domain.WatchlistEntry]{Entries: entries, Count: len(entries)})
}

// AddToWatchlist handles POST /watchlist.
func (h *Handlers) AddToWatchlist(c *gin.Context) {
	req, mt, okReq := bindEntry(c)
	if !okReq {
		return
	}
	entry, err := h.watchSvc.Add(c.Request.Context(), userID(c), req.MediaID, mt)
	if err != nil {
		failValidation(c, err, ErrCodeAddFailed)
		return
	}
	ok(c, http.StatusCreated, entry)
}

// ToggleWatchlist handles POST /watchlist/toggle.
func (h *Handlers) ToggleWatchlist(c *gin.Context) {
	req, mt, okReq := bindEntry(c)
	if !okReq {
		return
	}
	added, err := h.watchSvc.Toggle(c.Request.Context(), userID(c), req.MediaID, mt)
	if err != nil {
		failValidation(c, err, ErrCodeToggleFailed)
		return
	}
	ok(c, http.StatusOK, ToggleResponse{Added: added})
}

// WatchlistContains handles GET /watchlist/contains.
func (h *Handlers) WatchlistContains(c *gin.Context) {
	mediaID, mt, okReq := refFromQuery(c)
	if !okReq {
		return
	}
	in, err := h.watchSvc.Contains(c.Request.Context(), userID(c), mediaID, mt)
	if err != nil {
		failValidation(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, ContainsResponse{InWatchlist: in})
}

// RemoveFromWatchlist handles POST /watchlist/remove.
func (h *Handlers) RemoveFromWatchlist(c *gin.Context) {
	req, mt, okReq := bindEntry(c)
	if !okReq {
		return
	}
	if err := h.watchSvc.Remove(c.Request.Context(), userID(c), req.MediaID, mt); err != nil {
		failValidation(c, err, ErrCodeRemoveFailed)
		return
	}
	noContent(c)
}

// DeleteWatchlistEntry handles DELETE /watchlist/:id.
func (h *Handlers) DeleteWatchlistEntry(c *gin.Context) {
	if err := h.watchSvc.RemoveByID(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeRemoveFailed, "could not remove entry")
		return
	}
	noContent(c)
}

// ClearWatchlist handles DELETE /watchlist.
func (h *Handlers) ClearWatchlist(c *gin.Context) {
	if err := h.watchSvc.Clear(c.Request.Context(), userID(c)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeClearFailed, "could not clear watchlist")
		return
	}
	noContent(c)
}

//
// History endpoints
//

// ListHistory handles GET /history.
func (h *Handlers) ListHistory(c *gin.Context) {
	entries, err := h.histSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load history")
		return
	}
	ok(c, http.StatusOK, ListResponse[domain.HistoryEntry]{Entries: entries, Count: len(entries)})
}

// RecordWatch handles POST /history.
func (h *Handlers) RecordWatch(c *gin.Context) {
	req, mt, okReq := bindEntry(c)
	if !okReq {
		return
	}
	entry, err := h.histSvc.RecordWatch(c.Request.Context(), userID(c), req.MediaID, mt)
	if err != nil {
		failValidation(c, err, ErrCodeAddFailed)
		return
	}
	ok(c, http.StatusCreated, entry)
}

// RemoveFromHistory handles POST /history/remove.
func (h *Handlers) RemoveFromHistory(c *gin.Context) {
	req, mt, okReq := bindEntry(c)
	if !okReq {
		return
	}
	if err := h.histSvc.Remove(c.Request.Context(), userID(c), req.MediaID, mt); err != nil {
		failValidation(c, err, ErrCodeRemoveFailed)
		return
	}
	noContent(c)
}

// DeleteHistoryEntry handles DELETE /history/:id.
func (h *Handlers) DeleteHistoryEntry(c *gin.Context) {
	if err := h.histSvc.RemoveByID(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeRemoveFailed, "could not remove entry")
		return
	}
	noContent(c)
}

// ClearHistory handles DELETE /history.
func (h *Handlers) ClearHistory(c *gin.Context) {
	if err := h.histSvc.Clear(c.Request.Context(), userID(c)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeClearFailed, "could not clear history")
		return
	}
	noContent(c)
}
