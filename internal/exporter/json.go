// Package exporter writes favorites fetched from the server to local files:
// a JSON export (the server's import format) or a SQLite snapshot for
// offline querying.
package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/favtui/fav/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/favorites-export-YYYY-MM-DD.json
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("favorites-export-%s.json", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// WriteJSON writes favorites as a pretty-printed JSON array. The output is
// exactly what the server's import endpoint accepts.
func WriteJSON(w io.Writer, favorites []model.Favorite) error {
	if favorites == nil {
		favorites = []model.Favorite{}
	}
	data, err := json.MarshalIndent(favorites, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
