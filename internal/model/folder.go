package model

const (
	// RootFolderID is the server's implicit root folder. It wraps every other
	// folder in the /folders response and is never a valid filter scope.
	RootFolderID = 1

	// RootFolderName is the label the server uses for the root wrapper.
	RootFolderName = "Favorites"
)

// Folder is a node in the server's nested folder tree.
type Folder struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ParentID    *int     `json:"parent_id"`
	Children    []Folder `json:"children"`
}

// IsRoot reports whether the folder is the server's root wrapper.
func (f Folder) IsRoot() bool {
	return f.ID == RootFolderID || f.Name == RootFolderName
}

// FindFolder returns the first folder with the given id at any depth,
// or nil if the tree does not contain it.
func FindFolder(tree []Folder, id int) *Folder {
	for i := range tree {
		if tree[i].ID == id {
			return &tree[i]
		}
		if found := FindFolder(tree[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FolderPath returns the breadcrumb for a folder: its ancestors from the
// outermost down to the folder itself, with the root wrapper excluded.
// An id that does not resolve yields an empty path.
//
// The walk follows ParentID links via FindFolder and keeps a visited set so a
// malformed (cyclic) tree terminates instead of looping.
func FolderPath(tree []Folder, id int) []Folder {
	folder := FindFolder(tree, id)
	if folder == nil || folder.IsRoot() {
		return nil
	}

	var path []Folder
	visited := map[int]bool{}

	for folder != nil && !folder.IsRoot() {
		if visited[folder.ID] {
			break
		}
		visited[folder.ID] = true

		path = append([]Folder{*folder}, path...)

		if folder.ParentID == nil {
			break
		}
		folder = FindFolder(tree, *folder.ParentID)
	}

	return path
}
