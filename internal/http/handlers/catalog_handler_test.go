package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/screenlog/go-library-backend/internal/catalog"
	"github.com/screenlog/go-library-backend/internal/domain"
)

func newCatalogRouter(cat CatalogService) *gin.Engine {
	h := &Handlers{catSvc: cat}
	r := gin.New()
	r.GET("/catalog/search", h.CatalogSearch)
	r.GET("/catalog/:media_type/:id", h.CatalogDetails)
	return r
}

func TestCatalogDetails_Success(t *testing.T) {
	r := newCatalogRouter(&fakeCatalog{})

	w := doJSON(t, r, http.MethodGet, "/catalog/movie/603", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var meta catalog.Metadata
	if err := json.Unmarshal(w.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.ID != 603 || meta.MediaType != domain.MediaTypeMovie {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestCatalogDetails_Validation(t *testing.T) {
	r := newCatalogRouter(&fakeCatalog{})

	for _, path := range []string{"/catalog/book/1", "/catalog/movie/abc", "/catalog/movie/-3"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, w.Code)
		}
	}
}

func TestCatalogDetails_NotFoundAndUpstreamFailure(t *testing.T) {
	cat := &fakeCatalog{
		details: func(_ context.Context, _ domain.MediaType, id int64) (*catalog.Metadata, error) {
			if id == 404 {
				return nil, catalog.ErrNotFound
			}
			return nil, errBoom
		},
	}
	r := newCatalogRouter(cat)

	w := doJSON(t, r, http.MethodGet, "/catalog/movie/404", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing item status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/catalog/movie/500", "", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("upstream failure status = %d", w.Code)
	}
	var resp ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != ErrCodeLookupFailed {
		t.Fatalf("error code = %q", resp.Code)
	}
}

func TestCatalogSearch(t *testing.T) {
	r := newCatalogRouter(&fakeCatalog{})

	w := doJSON(t, r, http.MethodGet, "/catalog/search?query=matrix", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var sr SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &sr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sr.Count != 1 || len(sr.Results) != 1 || sr.Results[0].Title != "hit" {
		t.Fatalf("unexpected search response: %+v", sr)
	}

	w = doJSON(t, r, http.MethodGet, "/catalog/search?query=++", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty query status = %d", w.Code)
	}

	failing := &fakeCatalog{
		search: func(context.Context, string) ([]catalog.Metadata, error) { return nil, errBoom },
	}
	r = newCatalogRouter(failing)
	w = doJSON(t, r, http.MethodGet, "/catalog/search?query=x", "", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("failing search status = %d", w.Code)
	}
}
