// Catalog proxy HTTP handlers.
//
// The frontend resolves artwork and titles through these endpoints instead
// of talking to the metadata provider directly, which keeps the provider
// token server-side:
//
//   - GET /catalog/:media_type/:id   (single-item details)
//   - GET /catalog/search            (free-text search)
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/go-library-backend/internal/catalog"
	"github.com/screenlog/go-library-backend/internal/domain"
)

// CatalogService defines the catalog reads consumed by HTTP handlers. It is
// satisfied by catalog.Client.
type CatalogService interface {
	// Details fetches metadata for one item; catalog.ErrNotFound when absent.
	Details(ctx context.Context, mt domain.MediaType, mediaID int64) (*catalog.Metadata, error)
	// Search runs a free-text query for movies and TV shows.
	Search(ctx context.Context, query string) ([]catalog.Metadata, error)
}

// SearchResponse wraps catalog search results.
type SearchResponse struct {
	Results []catalog.Metadata `json:"results"`
	Count   int                `json:"count"`
}

// refFromQuery parses a media reference from the media_id / media_type
// query parameters. It reports false after writing a 400 response when
// either is missing or malformed.
func refFromQuery(c *gin.Context) (int64, domain.MediaType, bool) {
	id, err := strconv.ParseInt(c.Query("media_id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "media_id must be a positive number")
		return 0, "", false
	}
	mt := domain.MediaType(strings.ToLower(strings.TrimSpace(c.Query("media_type"))))
	if !mt.Valid() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "media_type must be movie or tv")
		return 0, "", false
	}
	return id, mt, true
}

// CatalogDetails handles GET /catalog/:media_type/:id.
func (h *Handlers) CatalogDetails(c *gin.Context) {
	mt := domain.MediaType(strings.ToLower(c.Param("media_type")))
	if !mt.Valid() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "media_type must be movie or tv")
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive number")
		return
	}

	meta, err := h.catSvc.Details(c.Request.Context(), mt, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "media not found")
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeLookupFailed, "catalog lookup failed")
		return
	}
	ok(c, http.StatusOK, meta)
}

// CatalogSearch handles GET /catalog/search.
func (h *Handlers) CatalogSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query is required")
		return
	}

	results, err := h.catSvc.Search(c.Request.Context(), query)
	if err != nil {
		fail(c, http.StatusBadGateway, ErrCodeLookupFailed, "catalog search failed")
		return
	}
	ok(c, http.StatusOK, SearchResponse{Results: results, Count: len(results)})
}
