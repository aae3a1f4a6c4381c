package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/favtui/fav/internal/model"
)

// View identifies the active top-level screen.
type View int

const (
	ViewBrowser View = iota
	ViewTags
	ViewSearch
	ViewTasks
)

// Mode identifies the active input mode within a view.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCreateFolder
	ModeRenameFolder
	ModeConfirmDeleteFolder
	ModeEditFavorite
	ModeEditTags
	ModeConfirmDeleteFavorite
	ModeTagFilter
	ModeLocalFilter
	ModeSettings
	ModeHelp
)

// Pane identifies the focused pane in the browser view.
type Pane int

const (
	PaneFolders Pane = iota
	PaneFavorites
)

const (
	titleCharLimit = 200
	tagsCharLimit  = 300
	inputWidth     = 50
)

// folderRow is one line of the flattened folder tree: the folder plus its
// indentation depth. Row 0 is always the synthetic "All favorites" entry.
type folderRow struct {
	folder *model.Folder
	depth  int
}

// flattenFolders converts the folder forest into display rows, children
// indented under their parents. The root folder itself is replaced by the
// unfiltered "All favorites" row, and its children start at depth 0.
func flattenFolders(folders []model.Folder) []folderRow {
	rows := []folderRow{{folder: nil, depth: 0}}
	var walk func(fs []model.Folder, depth int)
	walk = func(fs []model.Folder, depth int) {
		for i := range fs {
			f := &fs[i]
			if f.IsRoot() {
				walk(f.Children, depth)
				continue
			}
			rows = append(rows, folderRow{folder: f, depth: depth})
			walk(f.Children, depth+1)
		}
	}
	walk(folders, 0)
	return rows
}

// ModalState holds the text inputs shared by the folder and favorite modals.
type ModalState struct {
	NameInput    textinput.Model // folder name / favorite title
	SummaryInput textinput.Model // favorite summary
	TagsInput    textinput.Model // comma-separated tag names
	FilterInput  textinput.Model // fuzzy tag filter query
	EditID       int             // id of the folder or favorite being edited

	// Tag autocompletion
	AllTags          []model.Tag // known tags fetched when the modal opens
	TagSuggestions   []string    // filtered suggestions for current input
	TagSuggestionIdx int         // selected suggestion index (-1 = none)

	// Settings menu
	SettingsCursor int
}

// NewModalState creates a ModalState with initialized inputs.
func NewModalState() ModalState {
	nameInput := textinput.New()
	nameInput.Placeholder = "Name"
	nameInput.CharLimit = titleCharLimit
	nameInput.Width = inputWidth

	summaryInput := textinput.New()
	summaryInput.Placeholder = "Summary"
	summaryInput.CharLimit = tagsCharLimit
	summaryInput.Width = inputWidth

	tagsInput := textinput.New()
	tagsInput.Placeholder = "tag1, tag2, tag3"
	tagsInput.CharLimit = tagsCharLimit
	tagsInput.Width = inputWidth

	filterInput := textinput.New()
	filterInput.Placeholder = "Fuzzy tag query..."
	filterInput.CharLimit = titleCharLimit
	filterInput.Width = inputWidth

	return ModalState{
		NameInput:        nameInput,
		SummaryInput:     summaryInput,
		TagsInput:        tagsInput,
		FilterInput:      filterInput,
		TagSuggestionIdx: -1,
	}
}

// Reset clears all modal inputs for a new modal session.
func (m *ModalState) Reset() {
	m.NameInput.Reset()
	m.SummaryInput.Reset()
	m.TagsInput.Reset()
	m.FilterInput.Reset()
	m.EditID = 0
	m.TagSuggestions = nil
	m.TagSuggestionIdx = -1
	m.SettingsCursor = 0
}

// settingsActions are the entries of the settings menu, in display order.
var settingsActions = []struct {
	Label string
	Desc  string
}{
	{Label: "Restart import", Desc: "re-run the favorites import task"},
	{Label: "Reindex database", Desc: "rebuild the vector search index"},
	{Label: "Reset database", Desc: "drop and recreate all data"},
}
