// Package search provides client-side fuzzy narrowing of rows that are
// already loaded: tag suggestions in the tag editor and the local filter
// over the favorites feed. Server-side fuzzy and vector search are separate
// concerns and live behind the api package.
package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/favtui/fav/internal/model"
)

// FavoriteMatch is a fuzzy match against a loaded favorite.
type FavoriteMatch struct {
	Favorite       model.Favorite
	MatchedIndexes []int
	Score          int
}

// favoriteTitles implements fuzzy.Source over favorite titles.
type favoriteTitles []model.Favorite

func (ft favoriteTitles) String(i int) string {
	return ft[i].DisplayTitle()
}

func (ft favoriteTitles) Len() int {
	return len(ft)
}

// FilterFavorites fuzzy-matches loaded favorites by title.
// Results are sorted by match score, best first. An empty query matches
// nothing.
func FilterFavorites(favorites []model.Favorite, query string) []FavoriteMatch {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, favoriteTitles(favorites))

	results := make([]FavoriteMatch, len(matches))
	for i, m := range matches {
		results[i] = FavoriteMatch{
			Favorite:       favorites[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// tagNames implements fuzzy.Source over tag names.
type tagNames []model.Tag

func (tn tagNames) String(i int) string {
	return tn[i].Name
}

func (tn tagNames) Len() int {
	return len(tn)
}

// FilterTags fuzzy-matches tags by name for the suggestion list, excluding
// tags the favorite already carries. Best match first; an empty query
// matches nothing.
func FilterTags(tags []model.Tag, query string, exclude []model.Tag) []model.Tag {
	if query == "" {
		return nil
	}

	excluded := make(map[int]bool, len(exclude))
	for _, t := range exclude {
		excluded[t.ID] = true
	}

	candidates := make(tagNames, 0, len(tags))
	for _, t := range tags {
		if !excluded[t.ID] {
			candidates = append(candidates, t)
		}
	}

	matches := fuzzy.FindFrom(query, candidates)

	results := make([]model.Tag, len(matches))
	for i, m := range matches {
		results[i] = candidates[m.Index]
	}
	return results
}
