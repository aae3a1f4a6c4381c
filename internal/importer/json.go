// Package importer parses export files into favorites for the server's
// import endpoint. Two formats are supported: the server's own JSON export
// (a favorite array) and Netscape bookmark HTML as written by browsers.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/favtui/fav/internal/model"
)

// ParseJSON parses a JSON export (the array produced by `fav export`). Every
// entry must carry a URL; anything else is rejected rather than silently
// skipped, since a malformed export usually means the wrong file.
func ParseJSON(r io.Reader) ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := json.NewDecoder(r).Decode(&favorites); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	for i, fav := range favorites {
		if fav.URL == "" {
			return nil, fmt.Errorf("entry %d has no url", i)
		}
	}
	return favorites, nil
}

// ParseFile parses an export file, picking the format from the extension:
// .html/.htm is treated as Netscape bookmark HTML, everything else as JSON.
func ParseFile(path string, r io.Reader) ([]model.Favorite, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ParseHTML(r)
	default:
		return ParseJSON(r)
	}
}
