package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/favtui/fav/internal/feed"
	"github.com/favtui/fav/internal/model"
	"github.com/favtui/fav/internal/tui/layout"
)

// renderView assembles the full screen for the active view and mode.
func (a App) renderView() string {
	var body string
	switch a.view {
	case ViewBrowser:
		body = a.renderBrowser()
	case ViewTags:
		body = a.renderTags()
	case ViewSearch:
		body = a.renderSearch()
	case ViewTasks:
		body = a.renderTasks()
	}

	if modal := a.renderModal(); modal != "" {
		body = modal
	}

	sections := []string{
		a.renderTabs(),
		body,
		a.renderStatusLine(),
		a.styles.Help.Render(a.renderHints(a.getContextualHints())),
	}
	return a.styles.App.Render(strings.Join(sections, "\n"))
}

// renderTabs shows the view switcher line.
func (a App) renderTabs() string {
	labels := []string{"1 Browser", "2 Tags", "3 Search", "4 Tasks"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if View(i) == a.view {
			parts[i] = a.styles.Title.Render(label)
		} else {
			parts[i] = a.styles.HintDesc.Render(label)
		}
	}
	return strings.Join(parts, "   ")
}

// renderBrowser draws the folder sidebar and the favorites pane side by side.
func (a App) renderBrowser() string {
	split := layout.SplitWidths(a.width)
	height := layout.PaneHeight(a.height)

	folderPane := a.renderFolderPane(split.Sidebar, height)
	favPane := a.renderFavoritePane(split.Main, height)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, folderPane, favPane)
	return a.renderBreadcrumb() + "\n" + panes
}

// renderBreadcrumb shows the ancestry of the current folder scope. The root
// wrapper is not part of the path.
func (a App) renderBreadcrumb() string {
	scope := a.feed.Scope()
	var text string
	switch scope.Kind {
	case feed.ScopeFolder:
		path := model.FolderPath(a.folders, scope.FolderID)
		names := make([]string, len(path))
		for i, f := range path {
			names[i] = f.Name
		}
		text = strings.Join(names, " / ")
	case feed.ScopeTag:
		text = "tag: " + scope.Query
	default:
		text = model.RootFolderName
	}
	return a.styles.Breadcrumb.Render(layout.Truncate(text, a.width-4))
}

func (a App) renderFolderPane(width, height int) string {
	style := a.styles.Pane
	if a.pane == PaneFolders {
		style = a.styles.PaneActive
	}

	lines := []string{a.styles.Title.Render("Folders")}
	start, end := layout.VisibleWindow(a.folderCursor, len(a.rows), height-1)
	for i := start; i < end; i++ {
		row := a.rows[i]
		label := "All favorites"
		if row.folder != nil {
			label = strings.Repeat("  ", row.depth) + row.folder.Name
		}
		label = layout.Truncate(label, width-2)

		if i == a.folderCursor && a.pane == PaneFolders {
			lines = append(lines, a.styles.ItemSelected.Width(width).Render(label))
		} else {
			lines = append(lines, a.styles.Folder.Render(label))
		}
	}

	return style.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (a App) renderFavoritePane(width, height int) string {
	style := a.styles.Pane
	if a.pane == PaneFavorites {
		style = a.styles.PaneActive
	}

	title := "Favorites"
	if a.feed.Scope().Kind == feed.ScopeTag {
		title = fmt.Sprintf("Favorites ~ %s", a.feed.Scope().Query)
	}
	if a.filterQuery != "" {
		title += fmt.Sprintf(" [filter: %s]", a.filterQuery)
	}
	lines := []string{a.styles.Title.Render(title)}

	items := a.visibleFavorites()
	if len(items) == 0 {
		empty := "No favorites"
		if a.feed.Loading() {
			empty = "Loading..."
		}
		lines = append(lines, a.styles.Empty.Render(empty))
		return style.Width(width).Height(height).Render(strings.Join(lines, "\n"))
	}

	// Two lines per favorite: title, then url and tags.
	visible := (height - 1) / 2
	start, end := layout.VisibleWindow(a.favCursor, len(items), visible)
	for i := start; i < end; i++ {
		lines = append(lines, a.renderFavoriteRow(items[i], i == a.favCursor && a.pane == PaneFavorites, width)...)
	}

	if !a.feed.Done() && a.filterQuery == "" {
		lines = append(lines, a.styles.Empty.Render("..."))
	}

	return style.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (a App) renderFavoriteRow(fav model.Favorite, selected bool, width int) []string {
	title := layout.Truncate(fav.DisplayTitle(), width-2)

	url := layout.Truncate(fav.URL, width-4)
	detail := a.styles.URL.Render(url)
	if names := fav.TagNames(); len(names) > 0 {
		if room := width - 6 - layout.VisibleLength(url); room > 0 {
			detail += "  " + a.styles.Tag.Render(layout.Truncate("#"+strings.Join(names, " #"), room))
		}
	}

	if selected {
		return []string{
			a.styles.ItemSelected.Width(width).Render(title),
			"  " + detail,
		}
	}
	return []string{
		a.styles.Item.Render(title),
		"  " + detail,
	}
}

// renderTags draws the tag counts list.
func (a App) renderTags() string {
	height := layout.PaneHeight(a.height)
	width := a.width - 6

	lines := []string{a.styles.Title.Render("Tags")}

	if a.tagsLoading {
		lines = append(lines, a.styles.Empty.Render("Counting tags..."))
	} else if len(a.tagCounts) == 0 {
		lines = append(lines, a.styles.Empty.Render("No tags"))
	}

	start, end := layout.VisibleWindow(a.tagCursor, len(a.tagCounts), height-1)
	for i := start; i < end; i++ {
		tc := a.tagCounts[i]
		label := fmt.Sprintf("%-30s %s", layout.Truncate(tc.Tag.Name, 30), a.styles.Count.Render(fmt.Sprintf("%d", tc.Count)))
		if i == a.tagCursor {
			lines = append(lines, a.styles.ItemSelected.Render(label))
		} else {
			lines = append(lines, a.styles.Item.Render(label))
		}
	}

	return a.styles.Pane.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderSearch draws the vector search input and ranked results.
func (a App) renderSearch() string {
	height := layout.PaneHeight(a.height)
	width := a.width - 6

	lines := []string{
		a.styles.Title.Render("Search"),
		a.searchInput.View(),
		"",
	}

	results := a.searchFeed.Items()
	query := a.searchFeed.Scope().Query

	switch {
	case a.searching:
		lines = append(lines, a.styles.Empty.Render("Searching..."))
	case query != "" && len(results) == 0:
		lines = append(lines, a.styles.Empty.Render("No results for "+query))
	}

	// Three lines per result: the summary the match was ranked on is worth
	// the room here.
	visible := (height - 3) / 3
	start, end := layout.VisibleWindow(a.searchCursor, len(results), visible)
	for i := start; i < end; i++ {
		selected := i == a.searchCursor && !a.searchFocused
		lines = append(lines, a.renderSearchRow(results[i], selected, width)...)
	}

	return a.styles.Pane.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderSearchRow adds a summary line to the usual favorite row.
func (a App) renderSearchRow(fav model.Favorite, selected bool, width int) []string {
	row := a.renderFavoriteRow(fav, selected, width)
	summary := layout.Truncate(fav.Summary, width-4)
	return []string{row[0], "  " + a.styles.Summary.Render(summary), row[1]}
}

// renderTasks draws the background task list with progress.
func (a App) renderTasks() string {
	height := layout.PaneHeight(a.height)
	width := a.width - 6

	lines := []string{a.styles.Title.Render("Tasks")}

	if len(a.tasks) == 0 {
		lines = append(lines, a.styles.Empty.Render("No background tasks"))
	}

	start, end := layout.VisibleWindow(a.taskCursor, len(a.tasks), height-1)
	for i := start; i < end; i++ {
		task := a.tasks[i]
		status := task.Status
		switch task.Status {
		case model.TaskRunning:
			status = a.styles.TaskRunning.Render(status)
		case model.TaskRestartable:
			status = a.styles.TaskFailed.Render(status)
		}
		label := fmt.Sprintf("%-30s %s %s", layout.Truncate(task.Name, 30), renderProgress(task.Progress), status)
		if i == a.taskCursor {
			lines = append(lines, a.styles.ItemSelected.Render(label))
		} else {
			lines = append(lines, a.styles.Item.Render(label))
		}
	}

	return a.styles.Pane.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderProgress draws a ten-cell progress bar for a 0-100 value.
func renderProgress(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 10
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", 10-filled), pct)
}

// renderModal draws the active modal, or "" in normal mode.
func (a App) renderModal() string {
	switch a.mode {
	case ModeCreateFolder:
		return a.renderInputModal("New folder", a.modal.NameInput.View())
	case ModeRenameFolder:
		return a.renderInputModal("Rename folder", a.modal.NameInput.View())
	case ModeConfirmDeleteFolder:
		return a.renderConfirmModal("Delete folder and its favorites?")
	case ModeEditFavorite:
		body := a.modal.NameInput.View() + "\n" + a.modal.SummaryInput.View()
		return a.renderInputModal("Edit favorite", body)
	case ModeEditTags:
		body := a.modal.TagsInput.View()
		if len(a.modal.TagSuggestions) > 0 {
			var sugg []string
			for i, s := range a.modal.TagSuggestions {
				if i == a.modal.TagSuggestionIdx {
					sugg = append(sugg, a.styles.ItemSelected.Render(s))
				} else {
					sugg = append(sugg, a.styles.Item.Render(s))
				}
			}
			body += "\n" + strings.Join(sugg, "\n")
		}
		return a.renderInputModal("Edit tags", body)
	case ModeConfirmDeleteFavorite:
		return a.renderConfirmModal("Delete favorite?")
	case ModeTagFilter:
		return a.renderInputModal("Fuzzy tag filter", a.modal.FilterInput.View())
	case ModeLocalFilter:
		return a.renderInputModal("Filter loaded favorites", a.modal.FilterInput.View())
	case ModeSettings:
		return a.renderSettingsModal()
	case ModeHelp:
		return a.renderHelpModal()
	}
	return ""
}

func (a App) renderInputModal(title, body string) string {
	content := a.styles.Title.Render(title) + "\n\n" + body + "\n\n" +
		a.renderHintsInline([]Hint{{Key: "Enter", Desc: "save"}, {Key: "Esc", Desc: "cancel"}})
	return a.styles.PaneActive.Width(inputWidth + 8).Render(content)
}

func (a App) renderConfirmModal(question string) string {
	content := a.styles.Title.Render(question) + "\n\n" +
		a.renderHintsInline([]Hint{{Key: "y/Enter", Desc: "confirm"}, {Key: "n/Esc", Desc: "cancel"}})
	return a.styles.PaneActive.Width(inputWidth + 8).Render(content)
}

func (a App) renderSettingsModal() string {
	lines := []string{a.styles.Title.Render("Settings"), ""}
	for i, action := range settingsActions {
		label := fmt.Sprintf("%-18s %s", action.Label, a.styles.HintDesc.Render(action.Desc))
		if i == a.modal.SettingsCursor {
			lines = append(lines, a.styles.ItemSelected.Render(label))
		} else {
			lines = append(lines, a.styles.Item.Render(label))
		}
	}
	lines = append(lines, "", a.renderHintsInline([]Hint{{Key: "Enter", Desc: "run"}, {Key: "Esc", Desc: "close"}}))
	return a.styles.PaneActive.Width(inputWidth + 8).Render(strings.Join(lines, "\n"))
}

func (a App) renderHelpModal() string {
	rows := []Hint{
		{Key: "j/k", Desc: "move"},
		{Key: "h/l", Desc: "switch pane"},
		{Key: "gg/G", Desc: "top/bottom"},
		{Key: "enter", Desc: "open / select"},
		{Key: "Y", Desc: "yank URL"},
		{Key: "a", Desc: "add folder"},
		{Key: "r", Desc: "rename folder"},
		{Key: "e", Desc: "edit favorite"},
		{Key: "t", Desc: "edit tags"},
		{Key: "d", Desc: "delete"},
		{Key: "/", Desc: "fuzzy tag filter"},
		{Key: "f", Desc: "filter loaded rows"},
		{Key: "1-4", Desc: "switch view"},
		{Key: "R", Desc: "refresh"},
		{Key: "S", Desc: "settings"},
		{Key: "q", Desc: "quit"},
	}
	lines := []string{a.styles.Title.Render("Help"), ""}
	for _, h := range rows {
		lines = append(lines, fmt.Sprintf("  %s  %s", a.styles.HintKey.Render(fmt.Sprintf("%-8s", h.Key)), a.styles.HintDesc.Render(h.Desc)))
	}
	return a.styles.PaneActive.Render(strings.Join(lines, "\n"))
}

// renderStatusLine shows the last status or error.
func (a App) renderStatusLine() string {
	if a.errText != "" {
		return a.styles.Error.Render(layout.Truncate(a.errText, a.width-4))
	}
	if a.status != "" {
		return a.styles.Status.Render(layout.Truncate(a.status, a.width-4))
	}
	return ""
}
