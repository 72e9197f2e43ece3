// Package store holds one state container per backend resource. Stores
// are plain injectable instances created at boot, never package-level
// singletons, so each test can run against a fresh one.
package store

import "rental-dashboard-backend/internal/backend"

const defaultLimit = 10

// listState is the slice of state every list-bearing store shares: the
// pagination cursor of the last successful fetch, the UI flags, and the
// pending-delete pair. Callers must hold the owning store's mutex.
type listState struct {
	loading     bool
	submitting  bool
	errMsg      string
	successMsg  string
	searchQuery string

	currentPage int
	totalPages  int
	totalData   int
	limit       int

	deleteTargetID   string
	showDeleteDialog bool

	// fetchSeq fences overlapping fetches: a response is applied only
	// when its sequence number is still the latest issued, so a slow
	// early response can never overwrite a newer one.
	fetchSeq uint64
}

func newListState() listState {
	return listState{currentPage: 1, limit: defaultLimit}
}

// beginFetch marks the store loading, clears the banners, and issues the
// fence token for this fetch.
func (l *listState) beginFetch() uint64 {
	l.loading = true
	l.errMsg = ""
	l.successMsg = ""
	l.fetchSeq++
	return l.fetchSeq
}

// stale reports whether a response carrying seq was superseded by a
// newer fetch.
func (l *listState) stale(seq uint64) bool {
	return seq != l.fetchSeq
}

// applyMeta folds a response's pagination meta into the cursor. A
// response without meta decodes to the zero value and keeps the previous
// cursor; a real empty page still carries currentPage, so genuine zero
// totals do apply.
func (l *listState) applyMeta(m backend.Meta) {
	if m == (backend.Meta{}) {
		return
	}
	l.currentPage = m.CurrentPage
	l.totalPages = m.TotalPages
	l.totalData = m.TotalItems
	if m.ItemsPerPage > 0 {
		l.limit = m.ItemsPerPage
	}
}

func (l *listState) confirmDelete(id string) {
	l.deleteTargetID = id
	l.showDeleteDialog = true
}

// cancelDelete clears the pending-delete pair atomically.
func (l *listState) cancelDelete() {
	l.deleteTargetID = ""
	l.showDeleteDialog = false
}
