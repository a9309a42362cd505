// Package services – enrichment join
//
// This file implements the read-time join between thin persisted library
// rows and the catalog. Rows are fetched already ordered by the repository;
// the join fans out one catalog lookup per row, tolerates any individual
// lookup failing, and returns the surviving rows in their original order.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/screenlog/go-library-backend/internal/catalog"
	"github.com/screenlog/go-library-backend/internal/domain"
)

// Enriched pairs a persisted library entry with its catalog metadata.
// Entries whose lookup failed never leave the join, so Metadata is always
// non-nil on returned values.
type Enriched[T any] struct {
	Entry    T                 `json:"entry"`
	Metadata *catalog.Metadata `json:"metadata"`
}

// enrichEntries resolves catalog metadata for every entry concurrently.
//
// Failure isolation is per item: a lookup that errors (not-found, timeout,
// transport) only drops its own entry. perItem bounds each lookup so one
// slow catalog call cannot stall the whole join; the timeout produces the
// same dropped-entry outcome as any other lookup failure. Results are
// written by index, so the repository's timestamp-descending order is
// preserved through the filter.
func enrichEntries[T domain.Referable](ctx context.Context, client catalog.Client, entries []T, perItem time.Duration) []Enriched[T] {
	joined := make([]*catalog.Metadata, len(entries))

	var g errgroup.Group
	for i, e := range entries {
		g.Go(func() error {
			mt, id := e.Ref()

			lctx := ctx
			if perItem > 0 {
				var cancel context.CancelFunc
				lctx, cancel = context.WithTimeout(ctx, perItem)
				defer cancel()
			}

			meta, err := client.Details(lctx, mt, id)
			if err != nil {
				// Expected for stale references; the entry is dropped below.
				log.Debug().
					Str("media_type", string(mt)).
					Int64("media_id", id).
					Err(err).
					Msg("catalog lookup failed, dropping entry")
				return nil
			}
			joined[i] = meta
			return nil
		})
	}
	// Goroutines never return an error; Wait only synchronizes.
	_ = g.Wait()

	out := make([]Enriched[T], 0, len(entries))
	for i, e := range entries {
		if joined[i] != nil {
			out = append(out, Enriched[T]{Entry: e, Metadata: joined[i]})
		}
	}
	return out
}
