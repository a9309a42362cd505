package domain

// Referable is satisfied by every library entry type; it exposes the
// catalog reference the enrichment join needs without the caller knowing
// which concrete table the entry came from.
type Referable interface {
	Ref() (MediaType, int64)
}

// Ref returns the catalog reference of a watchlist entry.
func (e WatchlistEntry) Ref() (MediaType, int64) { return e.MediaType, e.MediaID }

// Ref returns the catalog reference of a history entry.
func (e HistoryEntry) Ref() (MediaType, int64) { return e.MediaType, e.MediaID }
