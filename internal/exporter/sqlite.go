package exporter

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/favtui/fav/internal/model"
)

const snapshotSchema = `
	CREATE TABLE folders (
		id INTEGER PRIMARY KEY NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		parent_id INTEGER,
		FOREIGN KEY (parent_id) REFERENCES folders(id)
	);

	CREATE TABLE favorites (
		id INTEGER PRIMARY KEY NOT NULL,
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		folder_id INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE tags (
		id INTEGER PRIMARY KEY NOT NULL,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE favorite_tags (
		favorite_id INTEGER NOT NULL,
		tag_id INTEGER NOT NULL,
		PRIMARY KEY (favorite_id, tag_id),
		FOREIGN KEY (favorite_id) REFERENCES favorites(id),
		FOREIGN KEY (tag_id) REFERENCES tags(id)
	);

	CREATE INDEX idx_favorites_folder_id ON favorites(folder_id);
`

// WriteSQLite writes a SQLite snapshot of the folder tree and favorites.
// An existing file at path is replaced; a snapshot is a point-in-time copy,
// not a live store.
func WriteSQLite(path string, folders []model.Folder, favorites []model.Favorite) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertFolders(tx, folders); err != nil {
		return err
	}
	if err := insertFavorites(tx, favorites); err != nil {
		return err
	}

	return tx.Commit()
}

// insertFolders flattens the nested tree into rows, parents before children
// so the foreign key holds.
func insertFolders(tx *sql.Tx, folders []model.Folder) error {
	stmt, err := tx.Prepare("INSERT INTO folders (id, name, description, parent_id) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	var walk func([]model.Folder) error
	walk = func(level []model.Folder) error {
		for _, f := range level {
			var parentID any
			if f.ParentID != nil {
				parentID = *f.ParentID
			}
			if _, err := stmt.Exec(f.ID, f.Name, f.Description, parentID); err != nil {
				return err
			}
			if err := walk(f.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(folders)
}

func insertFavorites(tx *sql.Tx, favorites []model.Favorite) error {
	favStmt, err := tx.Prepare("INSERT INTO favorites (id, url, title, summary, folder_id, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer favStmt.Close()

	tagStmt, err := tx.Prepare("INSERT OR IGNORE INTO tags (id, name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer tagStmt.Close()

	linkStmt, err := tx.Prepare("INSERT OR IGNORE INTO favorite_tags (favorite_id, tag_id) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer linkStmt.Close()

	for _, fav := range favorites {
		createdAt := fav.CreatedAt.UTC().Format(time.RFC3339)
		if _, err := favStmt.Exec(fav.ID, fav.URL, fav.Title, fav.Summary, fav.FolderID, createdAt); err != nil {
			return err
		}
		for _, tag := range fav.Tags {
			if _, err := tagStmt.Exec(tag.ID, tag.Name); err != nil {
				return err
			}
			if _, err := linkStmt.Exec(fav.ID, tag.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
