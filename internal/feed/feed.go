// Package feed holds the favorites list state for the currently selected
// scope: pagination, de-duplication, and reconciliation of updates and
// deletes. The feed performs no I/O; callers fetch pages and hand them in
// together with the generation token the load started under, so responses
// for an abandoned scope are dropped instead of clobbering newer results.
package feed

import (
	"github.com/favtui/fav/internal/model"
)

// ScopeKind enumerates the filter contexts a feed can show.
type ScopeKind int

const (
	ScopeAll    ScopeKind = iota // every favorite, unfiltered
	ScopeFolder                  // favorites in one folder
	ScopeTag                     // server-side fuzzy tag query
	ScopeSearch                  // vector search results, not paginated
)

// Scope is the current filter context for the favorites list.
type Scope struct {
	Kind     ScopeKind
	FolderID int    // set for ScopeFolder
	Query    string // set for ScopeTag and ScopeSearch
}

// FolderScope returns the scope for a folder selection. Selecting the root
// wrapper means "all favorites" and is normalized to the unfiltered scope.
func FolderScope(folderID int) Scope {
	if folderID == model.RootFolderID {
		return Scope{Kind: ScopeAll}
	}
	return Scope{Kind: ScopeFolder, FolderID: folderID}
}

// TagScope returns the scope for a fuzzy tag query.
func TagScope(query string) Scope {
	return Scope{Kind: ScopeTag, Query: query}
}

// SearchScope returns the scope for a vector search query.
func SearchScope(query string) Scope {
	return Scope{Kind: ScopeSearch, Query: query}
}

// Feed is the favorites collection for one scope.
type Feed struct {
	scope    Scope
	items    []model.Favorite
	pageSize int
	next     int // offset of the next page to request
	done     bool
	loading  bool
	gen      int
}

// New creates an empty Feed with the given page size.
func New(pageSize int) *Feed {
	return &Feed{pageSize: pageSize}
}

// Reset switches the feed to a new scope, drops all held items and returns
// the new generation token. Responses carrying an older token are ignored
// by Apply.
func (f *Feed) Reset(scope Scope) int {
	f.scope = scope
	f.items = nil
	f.next = 0
	f.done = false
	f.loading = false
	f.gen++
	return f.gen
}

// Scope returns the current scope.
func (f *Feed) Scope() Scope {
	return f.scope
}

// Generation returns the current generation token.
func (f *Feed) Generation() int {
	return f.gen
}

// Items returns the held favorites in display order.
func (f *Feed) Items() []model.Favorite {
	return f.items
}

// Len returns the number of held favorites.
func (f *Feed) Len() int {
	return len(f.items)
}

// Done reports whether the end of the data has been reached.
func (f *Feed) Done() bool {
	return f.done
}

// Loading reports whether a page load is in flight.
func (f *Feed) Loading() bool {
	return f.loading
}

// PageSize returns the configured page size.
func (f *Feed) PageSize() int {
	return f.pageSize
}

// StartLoad marks a page load as in flight and returns the offset and limit
// to request. ok is false when a load is already running or the feed has
// reached the end of the data; at most one load runs per scope at a time.
func (f *Feed) StartLoad() (offset, limit int, ok bool) {
	if f.loading || f.done {
		return 0, 0, false
	}
	f.loading = true
	return f.next, f.pageSize, true
}

// Apply appends a fetched page. A page whose generation does not match the
// current one belongs to an abandoned scope and is dropped (reported as
// false). Favorites already held by id are skipped, so an overlapping or
// retried page cannot duplicate rows. A short page marks the end of the
// data; no server-side total is consulted.
func (f *Feed) Apply(gen int, page []model.Favorite) bool {
	if gen != f.gen {
		return false
	}
	f.loading = false

	for _, fav := range page {
		if f.indexOf(fav.ID) >= 0 {
			continue
		}
		f.items = append(f.items, fav)
	}
	f.next += len(page)

	if len(page) < f.pageSize {
		f.done = true
	}
	return true
}

// Fail clears the in-flight flag after a failed load for the given
// generation. Failures for stale generations are ignored.
func (f *Feed) Fail(gen int) {
	if gen == f.gen {
		f.loading = false
	}
}

// Fill replaces the whole collection with results that arrive in one shot
// (vector search). The feed is marked done; there are no further pages.
func (f *Feed) Fill(scope Scope, items []model.Favorite) int {
	gen := f.Reset(scope)
	f.items = items
	f.next = len(items)
	f.done = true
	return gen
}

// ApplyUpdate replaces the held favorite with a matching id. Under a tag
// scope the updated favorite is removed when it no longer carries a matching
// tag. Membership is re-evaluated on every update so the list never shows
// stale tag membership. Unknown ids are ignored.
func (f *Feed) ApplyUpdate(fav model.Favorite) {
	i := f.indexOf(fav.ID)
	if i < 0 {
		return
	}
	if f.scope.Kind == ScopeTag && !fav.HasTagMatching(f.scope.Query) {
		f.items = append(f.items[:i], f.items[i+1:]...)
		return
	}
	f.items[i] = fav
}

// ApplyDelete removes the favorite with the given id. Deleting an id that is
// not held is a no-op, so the operation is idempotent.
func (f *Feed) ApplyDelete(id int) {
	i := f.indexOf(id)
	if i < 0 {
		return
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
}

// indexOf returns the position of the favorite with the given id, or -1.
func (f *Feed) indexOf(id int) int {
	for i := range f.items {
		if f.items[i].ID == id {
			return i
		}
	}
	return -1
}
