package model_test

import (
	"testing"
	"time"

	"github.com/favtui/fav/internal/model"
)

func intPtr(i int) *int { return &i }

// testTree builds the canonical server shape: a root wrapper with id 1
// holding the real hierarchy.
func testTree() []model.Folder {
	return []model.Folder{
		{
			ID:   1,
			Name: "Favorites",
			Children: []model.Folder{
				{
					ID:       2,
					Name:     "Work",
					ParentID: intPtr(1),
					Children: []model.Folder{
						{ID: 4, Name: "Projects", ParentID: intPtr(2)},
					},
				},
				{ID: 3, Name: "Reading", ParentID: intPtr(1)},
			},
		},
	}
}

func TestFindFolder(t *testing.T) {
	tree := testTree()

	tests := []struct {
		name     string
		id       int
		wantName string
		wantNil  bool
	}{
		{name: "root", id: 1, wantName: "Favorites"},
		{name: "top level", id: 2, wantName: "Work"},
		{name: "nested", id: 4, wantName: "Projects"},
		{name: "missing", id: 99, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.FindFolder(tree, tt.id)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected folder %d, got nil", tt.id)
			}
			if got.Name != tt.wantName {
				t.Errorf("name mismatch: got %q, want %q", got.Name, tt.wantName)
			}
		})
	}
}

func TestFolderPath(t *testing.T) {
	tree := testTree()

	tests := []struct {
		name string
		id   int
		want []string
	}{
		{name: "top level excludes root", id: 2, want: []string{"Work"}},
		{name: "nested", id: 4, want: []string{"Work", "Projects"}},
		{name: "root is empty", id: 1, want: nil},
		{name: "missing is empty", id: 99, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := model.FolderPath(tree, tt.id)
			if len(path) != len(tt.want) {
				t.Fatalf("path length: got %d, want %d", len(path), len(tt.want))
			}
			for i, name := range tt.want {
				if path[i].Name != name {
					t.Errorf("path[%d]: got %q, want %q", i, path[i].Name, name)
				}
			}
		})
	}
}

func TestFolderPath_Idempotent(t *testing.T) {
	tree := testTree()

	path := model.FolderPath(tree, 4)
	if len(path) == 0 {
		t.Fatal("expected non-empty path")
	}

	// Re-deriving from the last element must give the same path.
	again := model.FolderPath(tree, path[len(path)-1].ID)
	if len(again) != len(path) {
		t.Fatalf("re-derived length: got %d, want %d", len(again), len(path))
	}
	for i := range path {
		if again[i].ID != path[i].ID {
			t.Errorf("re-derived path[%d]: got %d, want %d", i, again[i].ID, path[i].ID)
		}
	}
}

func TestFolderPath_CyclicTreeTerminates(t *testing.T) {
	// parent_id links forming a loop must not hang the walk.
	tree := []model.Folder{
		{
			ID:   1,
			Name: "Favorites",
			Children: []model.Folder{
				{ID: 2, Name: "A", ParentID: intPtr(3)},
				{ID: 3, Name: "B", ParentID: intPtr(2)},
			},
		},
	}

	path := model.FolderPath(tree, 2)
	if len(path) > 2 {
		t.Errorf("cyclic tree produced path of length %d", len(path))
	}
}

func TestCountTags(t *testing.T) {
	now := time.Now()
	favorites := []model.Favorite{
		{ID: 1, URL: "https://go.dev", Tags: []model.Tag{{ID: 10, Name: "go"}, {ID: 11, Name: "docs"}}, CreatedAt: now},
		{ID: 2, URL: "https://pkg.go.dev", Tags: []model.Tag{{ID: 10, Name: "go"}}, CreatedAt: now},
		{ID: 3, URL: "https://news.ycombinator.com", Tags: []model.Tag{}, CreatedAt: now},
	}

	counts := model.CountTags(favorites)
	if len(counts) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(counts))
	}
	if counts[0].Name != "go" || counts[0].Count != 2 {
		t.Errorf("counts[0]: got %s=%d, want go=2", counts[0].Name, counts[0].Count)
	}
	if counts[1].Name != "docs" || counts[1].Count != 1 {
		t.Errorf("counts[1]: got %s=%d, want docs=1", counts[1].Name, counts[1].Count)
	}
}

func TestFavorite_HasTagMatching(t *testing.T) {
	fav := model.Favorite{
		ID:   1,
		URL:  "https://example.com",
		Tags: []model.Tag{{ID: 1, Name: "Golang"}, {ID: 2, Name: "tooling"}},
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"golang", true},
		{"GO", true},
		{"tool", true},
		{"rust", false},
	}

	for _, tt := range tests {
		if got := fav.HasTagMatching(tt.query); got != tt.want {
			t.Errorf("HasTagMatching(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
