package model

import (
	"sort"
	"strings"
	"time"
)

// Tag is a server-owned label. Identity lives in the id; names are unique
// case-insensitively on the server.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Favorite is a saved URL with metadata, owned by the server.
type Favorite struct {
	ID        int       `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	FolderID  int       `json:"folder_id"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayTitle returns the title, or a placeholder for untitled favorites.
func (f Favorite) DisplayTitle() string {
	if f.Title == "" {
		return "Untitled"
	}
	return f.Title
}

// HasTag reports whether the favorite carries a tag with the given id.
func (f Favorite) HasTag(tagID int) bool {
	for _, t := range f.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// HasTagMatching reports whether any tag name contains the query,
// case-insensitively. Used to re-check tag-scope membership after an update;
// the server's fuzzy matcher is not reproducible client-side, so substring
// containment is the conservative stand-in.
func (f Favorite) HasTagMatching(query string) bool {
	query = strings.ToLower(query)
	for _, t := range f.Tags {
		if strings.Contains(strings.ToLower(t.Name), query) {
			return true
		}
	}
	return false
}

// TagNames returns the favorite's tag names in order.
func (f Favorite) TagNames() []string {
	names := make([]string, len(f.Tags))
	for i, t := range f.Tags {
		names[i] = t.Name
	}
	return names
}

// TagCount is a tag with its occurrence count across loaded favorites.
// The count is derived client-side; the server does not report it.
type TagCount struct {
	Tag
	Count int
}

// CountTags tallies tag occurrences across favorites, keyed by tag id.
// Results are sorted by count descending, then name.
func CountTags(favorites []Favorite) []TagCount {
	counts := map[int]*TagCount{}
	for _, f := range favorites {
		for _, t := range f.Tags {
			if c, ok := counts[t.ID]; ok {
				c.Count++
			} else {
				counts[t.ID] = &TagCount{Tag: t, Count: 1}
			}
		}
	}

	result := make([]TagCount, 0, len(counts))
	for _, c := range counts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}
