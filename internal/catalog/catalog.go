// Package catalog talks to the external movie/TV metadata catalog. The
// library tables persist only (media type, media id) pointers; this package
// resolves those pointers to rich metadata at read time.
package catalog

import (
	"context"
	"errors"

	"github.com/screenlog/go-library-backend/internal/domain"
)

// ErrNotFound is returned when the catalog has no item for the requested
// (media type, media id) pair. Callers treat it as a normal outcome, not a
// failure: enrichment drops the entry and moves on.
var ErrNotFound = errors.New("catalog: media not found")

// Metadata is the catalog's view of a single movie or TV show. Movies carry
// Title/ReleaseDate, shows carry Name/FirstAirDate; use the helpers below
// instead of branching on media type.
type Metadata struct {
	ID           int64            `json:"id"`
	MediaType    domain.MediaType `json:"media_type,omitempty"`
	Title        string           `json:"title,omitempty"`
	Name         string           `json:"name,omitempty"`
	PosterPath   string           `json:"poster_path,omitempty"`
	BackdropPath string           `json:"backdrop_path,omitempty"`
	VoteAverage  float64          `json:"vote_average,omitempty"`
	ReleaseDate  string           `json:"release_date,omitempty"`
	FirstAirDate string           `json:"first_air_date,omitempty"`
	Overview     string           `json:"overview,omitempty"`
}

// DisplayTitle returns the movie title or the show name, whichever is set.
func (m *Metadata) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return "Unknown"
}

// ReleaseOrAirDate returns the movie release date or the show first-air
// date, whichever is set.
func (m *Metadata) ReleaseOrAirDate() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	if m.FirstAirDate != "" {
		return m.FirstAirDate
	}
	return ""
}

// Client resolves catalog references to metadata. Implementations must be
// safe for concurrent use; the enrichment join issues one Details call per
// library entry in parallel.
type Client interface {
	// Details fetches metadata for a single item. It returns ErrNotFound
	// when the catalog has no such item.
	Details(ctx context.Context, mt domain.MediaType, mediaID int64) (*Metadata, error)

	// Search runs a free-text query and returns movie/TV matches.
	Search(ctx context.Context, query string) ([]Metadata, error)
}
