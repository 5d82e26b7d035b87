package client

import "trznica/internal/model"

// Mirror is a client's local read-only copy of the catalog, together with
// the last-applied search and sort parameters. It is confined to a single
// goroutine: the poller's run loop owns it, and user-initiated parameter
// changes reach it through the poller's channels.
type Mirror struct {
	items          []model.Item
	lastKnownCount int
	ids            map[int64]struct{}
	searchTerm     string
	sortKey        SortKey
}

// ReconcileResult describes what a reconciliation pass did.
type ReconcileResult struct {
	// Changed is true when the mirror was replaced.
	Changed bool
	// NewItems is the count-surplus heuristic: how many listings to
	// announce. Zero for silent replacements.
	NewItems int
}

// NewMirror creates an empty mirror with default projection parameters.
func NewMirror() *Mirror {
	return &Mirror{sortKey: SortDefault}
}

// Reconcile compares a freshly fetched catalog against the mirror. A count
// surplus is assumed to be all newly added listings and is announced; any
// other divergence (shorter list, same length but different identities)
// replaces the mirror silently. An identical snapshot is a no-op.
func (m *Mirror) Reconcile(fresh []model.Item) ReconcileResult {
	delta := len(fresh) - m.lastKnownCount

	var res ReconcileResult
	switch {
	case delta > 0:
		res = ReconcileResult{Changed: true, NewItems: delta}
	case delta != 0 || !m.sameIdentities(fresh):
		res = ReconcileResult{Changed: true}
	default:
		return res
	}

	m.items = fresh
	m.lastKnownCount = len(fresh)
	m.ids = make(map[int64]struct{}, len(fresh))
	for _, item := range fresh {
		m.ids[item.ID] = struct{}{}
	}
	return res
}

// sameIdentities reports whether fresh holds exactly the mirrored ID set.
// Tracking identities rather than just counts means a same-length content
// swap still triggers a refresh.
func (m *Mirror) sameIdentities(fresh []model.Item) bool {
	if len(fresh) != len(m.ids) {
		return false
	}
	for _, item := range fresh {
		if _, ok := m.ids[item.ID]; !ok {
			return false
		}
	}
	return true
}

// SetSearchTerm updates the free-text filter.
func (m *Mirror) SetSearchTerm(term string) { m.searchTerm = term }

// SearchTerm returns the current free-text filter.
func (m *Mirror) SearchTerm() string { return m.searchTerm }

// SetSortKey updates the sort order.
func (m *Mirror) SetSortKey(key SortKey) { m.sortKey = key }

// SortKey returns the current sort order.
func (m *Mirror) SortKey() SortKey { return m.sortKey }

// Count returns the last known catalog size.
func (m *Mirror) Count() int { return m.lastKnownCount }

// Projection applies the current search term and sort key to the mirrored
// items and returns the sequence to display.
func (m *Mirror) Projection() []model.Item {
	return Project(m.items, m.searchTerm, m.sortKey)
}
