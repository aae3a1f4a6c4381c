package feed_test

import (
	"testing"

	"github.com/favtui/fav/internal/feed"
	"github.com/favtui/fav/internal/model"
)

func fav(id int) model.Favorite {
	return model.Favorite{ID: id, URL: "https://example.com", FolderID: 2}
}

func favs(ids ...int) []model.Favorite {
	result := make([]model.Favorite, len(ids))
	for i, id := range ids {
		result[i] = fav(id)
	}
	return result
}

func ids(f *feed.Feed) []int {
	items := f.Items()
	result := make([]int, len(items))
	for i, item := range items {
		result[i] = item.ID
	}
	return result
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFolderScope_RootNormalizesToAll(t *testing.T) {
	scope := feed.FolderScope(model.RootFolderID)
	if scope.Kind != feed.ScopeAll {
		t.Errorf("root folder scope: got kind %d, want ScopeAll", scope.Kind)
	}

	scope = feed.FolderScope(2)
	if scope.Kind != feed.ScopeFolder || scope.FolderID != 2 {
		t.Errorf("folder scope: got %+v", scope)
	}
}

func TestFeed_PaginationAppendsAndTerminates(t *testing.T) {
	f := feed.New(3)
	gen := f.Reset(feed.FolderScope(2))

	offset, limit, ok := f.StartLoad()
	if !ok || offset != 0 || limit != 3 {
		t.Fatalf("first StartLoad: offset=%d limit=%d ok=%v", offset, limit, ok)
	}
	f.Apply(gen, favs(1, 2, 3))

	if f.Done() {
		t.Fatal("full page must not mark the feed done")
	}

	offset, _, ok = f.StartLoad()
	if !ok || offset != 3 {
		t.Fatalf("second StartLoad: offset=%d ok=%v", offset, ok)
	}
	f.Apply(gen, favs(4))

	if !f.Done() {
		t.Error("short page must mark the feed done")
	}
	if _, _, ok := f.StartLoad(); ok {
		t.Error("StartLoad after end of data must refuse")
	}
	if !equalIDs(ids(f), []int{1, 2, 3, 4}) {
		t.Errorf("items: got %v", ids(f))
	}
}

func TestFeed_InFlightGuard(t *testing.T) {
	f := feed.New(3)
	gen := f.Reset(feed.FolderScope(2))

	if _, _, ok := f.StartLoad(); !ok {
		t.Fatal("first StartLoad refused")
	}
	if _, _, ok := f.StartLoad(); ok {
		t.Error("concurrent StartLoad for the same scope must refuse")
	}

	f.Apply(gen, favs(1, 2, 3))
	if _, _, ok := f.StartLoad(); !ok {
		t.Error("StartLoad after Apply must be allowed again")
	}
}

func TestFeed_DuplicatePageDoesNotDuplicateIDs(t *testing.T) {
	f := feed.New(3)
	gen := f.Reset(feed.FolderScope(2))

	f.StartLoad()
	f.Apply(gen, favs(1, 2, 3))
	f.StartLoad()
	// Overlapping page, e.g. from a retried request.
	f.Apply(gen, favs(3, 4))

	if !equalIDs(ids(f), []int{1, 2, 3, 4}) {
		t.Errorf("items: got %v", ids(f))
	}
}

func TestFeed_StaleGenerationDropped(t *testing.T) {
	f := feed.New(3)
	oldGen := f.Reset(feed.FolderScope(2))
	f.StartLoad()

	// Scope switches before the first response lands.
	newGen := f.Reset(feed.FolderScope(5))
	f.StartLoad()
	f.Apply(newGen, favs(10))

	// The late response for the old scope must be discarded.
	if f.Apply(oldGen, favs(1, 2, 3)) {
		t.Error("stale generation applied")
	}
	if !equalIDs(ids(f), []int{10}) {
		t.Errorf("items: got %v, want [10]", ids(f))
	}
}

func TestFeed_EmptyFirstPageMeansNoData(t *testing.T) {
	f := feed.New(3)
	gen := f.Reset(feed.TagScope("nonexistent"))

	f.StartLoad()
	f.Apply(gen, nil)

	if f.Len() != 0 {
		t.Errorf("items: got %v", ids(f))
	}
	if !f.Done() {
		t.Error("empty page must report no more data")
	}
}

func TestFeed_ApplyUpdate(t *testing.T) {
	f := feed.New(10)
	gen := f.Reset(feed.FolderScope(2))
	f.StartLoad()
	f.Apply(gen, favs(5, 7, 9))

	updated := fav(7)
	updated.Title = "renamed"
	f.ApplyUpdate(updated)

	if f.Len() != 3 {
		t.Fatalf("length changed: got %d", f.Len())
	}
	if f.Items()[1].Title != "renamed" {
		t.Errorf("item not replaced in place: %+v", f.Items()[1])
	}
	if f.Items()[0].ID != 5 || f.Items()[2].ID != 9 {
		t.Error("neighbouring items disturbed")
	}

	// Updates for unknown ids are ignored.
	f.ApplyUpdate(fav(42))
	if f.Len() != 3 {
		t.Errorf("unknown id changed length: got %d", f.Len())
	}
}

func TestFeed_ApplyUpdate_TagScopeMembership(t *testing.T) {
	f := feed.New(10)
	gen := f.Reset(feed.TagScope("go"))
	f.StartLoad()

	tagged := fav(7)
	tagged.Tags = []model.Tag{{ID: 1, Name: "golang"}}
	f.Apply(gen, []model.Favorite{tagged})

	// Removing the matching tag must drop the favorite from the tag scope.
	untagged := fav(7)
	untagged.Tags = []model.Tag{{ID: 2, Name: "rust"}}
	f.ApplyUpdate(untagged)

	if f.Len() != 0 {
		t.Errorf("favorite without matching tag kept in tag scope: %v", ids(f))
	}
}

func TestFeed_ApplyDelete_Idempotent(t *testing.T) {
	f := feed.New(10)
	gen := f.Reset(feed.FolderScope(2))
	f.StartLoad()
	f.Apply(gen, favs(5, 7, 9))

	f.ApplyDelete(7)
	if !equalIDs(ids(f), []int{5, 9}) {
		t.Errorf("after delete: got %v, want [5 9]", ids(f))
	}

	f.ApplyDelete(7)
	if !equalIDs(ids(f), []int{5, 9}) {
		t.Errorf("second delete changed the collection: got %v", ids(f))
	}
}

func TestFeed_Fill(t *testing.T) {
	f := feed.New(10)
	gen := f.Reset(feed.FolderScope(2))
	f.StartLoad()
	f.Apply(gen, favs(1, 2))

	f.Fill(feed.SearchScope("generators"), favs(3, 5))

	if !equalIDs(ids(f), []int{3, 5}) {
		t.Errorf("items: got %v", ids(f))
	}
	if !f.Done() {
		t.Error("filled feed must be done")
	}
	if f.Scope().Kind != feed.ScopeSearch {
		t.Errorf("scope: got %+v", f.Scope())
	}
}

func TestFeed_FailClearsInFlight(t *testing.T) {
	f := feed.New(3)
	gen := f.Reset(feed.FolderScope(2))

	f.StartLoad()
	f.Fail(gen)
	if _, _, ok := f.StartLoad(); !ok {
		t.Error("StartLoad after Fail must be allowed")
	}

	// A stale failure must not clear a newer load.
	newGen := f.Reset(feed.FolderScope(3))
	f.StartLoad()
	f.Fail(gen)
	if _, _, ok := f.StartLoad(); ok {
		t.Error("stale Fail cleared the in-flight flag")
	}
	f.Fail(newGen)
}
