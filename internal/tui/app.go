// Package tui is the terminal frontend for the favorites server. It holds no
// data of its own: every mutation goes to the server first and local state is
// replaced by the confirmed response.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/favtui/fav/internal/api"
	"github.com/favtui/fav/internal/feed"
	"github.com/favtui/fav/internal/model"
	"github.com/favtui/fav/internal/search"
)

// nearEndThreshold is how close to the bottom of the feed the cursor may get
// before the next page is requested.
const nearEndThreshold = 5

// App is the main bubbletea model for the favorites manager.
type App struct {
	client *api.Client
	keys   KeyMap
	styles Styles

	view View
	mode Mode
	pane Pane

	// Browser view
	folders      []model.Folder
	rows         []folderRow
	folderCursor int
	feed         *feed.Feed
	favCursor    int
	filterQuery  string

	// Tags view
	tagCounts   []model.TagCount
	tagCursor   int
	tagGen      int
	tagAccum    []model.Favorite
	tagsLoading bool

	// Search view. Results live in their own feed so edits and deletes
	// reconcile through the same paths as the browser list.
	searchInput   textinput.Model
	searchFocused bool
	searchGen     int
	searchFeed    *feed.Feed
	searchCursor  int
	searching     bool

	// Tasks view
	tasks      []model.Task
	taskCursor int
	pollGen    int

	modal   ModalState
	status  string
	errText string

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Client   *api.Client
	PageSize int
	Keys     *KeyMap // optional, uses default if nil
	Styles   *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = api.DefaultPageSize
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Semantic search..."
	searchInput.CharLimit = titleCharLimit
	searchInput.Width = inputWidth

	return App{
		client:      params.Client,
		keys:        keys,
		styles:      styles,
		feed:        feed.New(pageSize),
		searchFeed:  feed.New(pageSize),
		rows:        flattenFolders(nil),
		searchInput: searchInput,
		modal:       NewModalState(),
		width:       80,
		height:      24,
	}
}

// Cursor returns the favorites cursor position.
func (a App) Cursor() int {
	return a.favCursor
}

// Favorites returns the favorites currently held for the active scope.
func (a App) Favorites() []model.Favorite {
	return a.feed.Items()
}

// CurrentScope returns the active favorites scope.
func (a App) CurrentScope() feed.Scope {
	return a.feed.Scope()
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(loadFoldersCmd(a.client), a.startScope(feed.FolderScope(model.RootFolderID)))
}

// startScope switches the feed to a new scope and kicks off the first page
// load. The pointer receiver matters: Reset bumps the generation.
func (a *App) startScope(scope feed.Scope) tea.Cmd {
	gen := a.feed.Reset(scope)
	a.favCursor = 0
	a.filterQuery = ""
	offset, limit, ok := a.feed.StartLoad()
	if !ok {
		return nil
	}
	return loadPageCmd(a.client, a.feed.Scope(), gen, offset, limit)
}

// maybeLoadMore requests the next page when the cursor is near the bottom.
// The feed refuses while a load is in flight or the end has been reached.
func (a *App) maybeLoadMore() tea.Cmd {
	if a.filterQuery != "" {
		return nil
	}
	if a.favCursor < a.feed.Len()-nearEndThreshold {
		return nil
	}
	offset, limit, ok := a.feed.StartLoad()
	if !ok {
		return nil
	}
	return loadPageCmd(a.client, a.feed.Scope(), a.feed.Generation(), offset, limit)
}

// selectedFolder returns the folder under the cursor, or nil for the
// "All favorites" row.
func (a App) selectedFolder() *model.Folder {
	if a.folderCursor <= 0 || a.folderCursor >= len(a.rows) {
		return nil
	}
	return a.rows[a.folderCursor].folder
}

// selectedFavorite returns the favorite under the cursor in the active view.
func (a App) selectedFavorite() *model.Favorite {
	switch a.view {
	case ViewSearch:
		items := a.searchFeed.Items()
		if a.searchCursor < len(items) {
			return &items[a.searchCursor]
		}
	default:
		items := a.visibleFavorites()
		if a.favCursor < len(items) {
			return &items[a.favCursor]
		}
	}
	return nil
}

// visibleFavorites returns the feed rows narrowed by the local filter, best
// match first, or the feed as-is when no filter is set.
func (a App) visibleFavorites() []model.Favorite {
	items := a.feed.Items()
	if a.filterQuery == "" {
		return items
	}
	matches := search.FilterFavorites(items, a.filterQuery)
	filtered := make([]model.Favorite, len(matches))
	for i, m := range matches {
		filtered[i] = m.Favorite
	}
	return filtered
}

// switchView leaves the current view and enters the target one, starting or
// stopping whatever background work the views need.
func (a *App) switchView(v View) tea.Cmd {
	if a.view == ViewTasks && v != ViewTasks {
		// Invalidate pending ticks.
		a.pollGen++
	}
	a.view = v
	a.mode = ModeNormal

	switch v {
	case ViewTags:
		return a.startTagCount()
	case ViewTasks:
		a.pollGen++
		return tea.Batch(loadTasksCmd(a.client, a.pollGen), taskTickCmd(a.pollGen))
	case ViewSearch:
		a.searchFocused = true
		a.searchInput.Focus()
		return textinput.Blink
	}
	return nil
}

// startTagCount begins the paged walk over all favorites that produces the
// client-side tag counts.
func (a *App) startTagCount() tea.Cmd {
	a.tagGen++
	a.tagAccum = nil
	a.tagsLoading = true
	return tagPageCmd(a.client, a.tagGen, 0, a.feed.PageSize())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case foldersLoadedMsg:
		a.folders = msg.folders
		a.rows = flattenFolders(msg.folders)
		if a.folderCursor >= len(a.rows) {
			a.folderCursor = len(a.rows) - 1
		}
		return a, nil

	case pageLoadedMsg:
		if a.feed.Apply(msg.gen, msg.page) {
			a.errText = ""
			a.clampFavCursor()
		}
		return a, nil

	case pageFailedMsg:
		a.feed.Fail(msg.gen)
		a.errText = msg.err.Error()
		return a, nil

	case searchDoneMsg:
		if msg.gen != a.searchGen {
			return a, nil
		}
		a.searching = false
		// Server rank order is kept as-is.
		a.searchFeed.Fill(feed.SearchScope(msg.query), msg.results)
		a.searchCursor = 0
		return a, nil

	case searchFailedMsg:
		if msg.gen == a.searchGen {
			a.searching = false
			a.errText = msg.err.Error()
		}
		return a, nil

	case folderSavedMsg:
		a.mode = ModeNormal
		a.status = "Saved folder " + msg.folder.Name
		return a, loadFoldersCmd(a.client)

	case folderDeletedMsg:
		a.mode = ModeNormal
		a.status = "Folder deleted"
		cmds := []tea.Cmd{loadFoldersCmd(a.client)}
		scope := a.feed.Scope()
		if scope.Kind == feed.ScopeFolder && scope.FolderID == msg.id {
			cmds = append(cmds, a.startScope(feed.FolderScope(model.RootFolderID)))
		}
		return a, tea.Batch(cmds...)

	case favoriteSavedMsg:
		a.mode = ModeNormal
		a.status = "Saved " + msg.favorite.DisplayTitle()
		a.feed.ApplyUpdate(msg.favorite)
		a.searchFeed.ApplyUpdate(msg.favorite)
		a.clampFavCursor()
		return a, nil

	case favoriteDeletedMsg:
		a.mode = ModeNormal
		a.status = "Favorite deleted"
		a.feed.ApplyDelete(msg.id)
		a.searchFeed.ApplyDelete(msg.id)
		a.clampFavCursor()
		if n := a.searchFeed.Len(); a.searchCursor >= n && a.searchCursor > 0 {
			a.searchCursor = n - 1
		}
		return a, nil

	case tagsLoadedMsg:
		a.modal.AllTags = msg.tags
		return a, nil

	case tagPageMsg:
		if msg.gen != a.tagGen {
			return a, nil
		}
		a.tagAccum = append(a.tagAccum, msg.page...)
		if len(msg.page) < a.feed.PageSize() {
			a.tagCounts = model.CountTags(a.tagAccum)
			a.tagAccum = nil
			a.tagsLoading = false
			if a.tagCursor >= len(a.tagCounts) {
				a.tagCursor = 0
			}
			return a, nil
		}
		return a, tagPageCmd(a.client, a.tagGen, len(a.tagAccum), a.feed.PageSize())

	case tagPageFailedMsg:
		if msg.gen == a.tagGen {
			a.tagsLoading = false
			a.tagAccum = nil
			a.errText = msg.err.Error()
		}
		return a, nil

	case tasksLoadedMsg:
		if msg.gen != a.pollGen {
			return a, nil
		}
		a.tasks = msg.tasks
		if a.taskCursor >= len(a.tasks) && a.taskCursor > 0 {
			a.taskCursor = len(a.tasks) - 1
		}
		return a, nil

	case taskTickMsg:
		if msg.gen != a.pollGen {
			return a, nil
		}
		return a, tea.Batch(loadTasksCmd(a.client, a.pollGen), taskTickCmd(a.pollGen))

	case adminDoneMsg:
		a.mode = ModeNormal
		a.status = msg.action
		return a, tea.Batch(loadFoldersCmd(a.client), a.startScope(feed.FolderScope(model.RootFolderID)))

	case yankDoneMsg:
		a.status = "Copied " + msg.url
		return a, nil

	case openedMsg:
		a.status = "Opened " + msg.url
		return a, nil

	case errMsg:
		a.errText = msg.err.Error()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) clampFavCursor() {
	if n := len(a.visibleFavorites()); a.favCursor >= n && a.favCursor > 0 {
		a.favCursor = n - 1
		if a.favCursor < 0 {
			a.favCursor = 0
		}
	}
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeNormal:
		return a.handleNormalKey(msg)
	case ModeCreateFolder, ModeRenameFolder:
		return a.handleFolderFormKey(msg)
	case ModeConfirmDeleteFolder:
		return a.handleConfirmFolderDeleteKey(msg)
	case ModeEditFavorite:
		return a.handleFavoriteFormKey(msg)
	case ModeEditTags:
		return a.handleTagsFormKey(msg)
	case ModeConfirmDeleteFavorite:
		return a.handleConfirmFavoriteDeleteKey(msg)
	case ModeTagFilter:
		return a.handleTagFilterKey(msg)
	case ModeLocalFilter:
		return a.handleLocalFilterKey(msg)
	case ModeSettings:
		return a.handleSettingsKey(msg)
	case ModeHelp:
		switch msg.String() {
		case "?", "q", "esc":
			a.mode = ModeNormal
		}
		return a, nil
	}
	return a, nil
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search input swallows most keys while focused.
	if a.view == ViewSearch && a.searchFocused {
		return a.handleSearchInputKey(msg)
	}

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.moveCursorTop()
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.Settings):
		a.mode = ModeSettings
		a.modal.SettingsCursor = 0
		return a, nil

	case key.Matches(msg, a.keys.Browser):
		return a, a.switchView(ViewBrowser)

	case key.Matches(msg, a.keys.Tags):
		return a, a.switchView(ViewTags)

	case key.Matches(msg, a.keys.Search):
		return a, a.switchView(ViewSearch)

	case key.Matches(msg, a.keys.Tasks):
		return a, a.switchView(ViewTasks)
	}

	switch a.view {
	case ViewBrowser:
		return a.handleBrowserKey(msg)
	case ViewTags:
		return a.handleTagsViewKey(msg)
	case ViewSearch:
		return a.handleSearchResultsKey(msg)
	case ViewTasks:
		return a.handleTasksKey(msg)
	}
	return a, nil
}

func (a *App) moveCursorTop() {
	switch a.view {
	case ViewBrowser:
		if a.pane == PaneFolders {
			a.folderCursor = 0
		} else {
			a.favCursor = 0
		}
	case ViewTags:
		a.tagCursor = 0
	case ViewSearch:
		a.searchCursor = 0
	case ViewTasks:
		a.taskCursor = 0
	}
}

func (a App) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Left):
		a.pane = PaneFolders
		return a, nil

	case key.Matches(msg, a.keys.Right):
		a.pane = PaneFavorites
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		return a, tea.Batch(loadFoldersCmd(a.client), a.startScope(a.feed.Scope()))

	case key.Matches(msg, a.keys.TagFilter):
		a.mode = ModeTagFilter
		a.modal.FilterInput.Reset()
		a.modal.FilterInput.Placeholder = "Fuzzy tag query..."
		a.modal.FilterInput.Focus()
		return a, textinput.Blink
	}

	if a.pane == PaneFolders {
		return a.handleFolderPaneKey(msg)
	}
	return a.handleFavoritePaneKey(msg)
}

func (a App) handleFolderPaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.folderCursor < len(a.rows)-1 {
			a.folderCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.folderCursor > 0 {
			a.folderCursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.folderCursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Open):
		// Selecting the "All favorites" row maps to the root scope.
		folderID := model.RootFolderID
		if f := a.selectedFolder(); f != nil {
			folderID = f.ID
		}
		a.pane = PaneFavorites
		return a, a.startScope(feed.FolderScope(folderID))

	case key.Matches(msg, a.keys.AddFolder):
		a.mode = ModeCreateFolder
		a.modal.Reset()
		a.modal.NameInput.Placeholder = "Folder name"
		a.modal.NameInput.Focus()
		if f := a.selectedFolder(); f != nil {
			a.modal.EditID = f.ID // new folder nests under the selection
		}
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Rename):
		f := a.selectedFolder()
		if f == nil {
			return a, nil
		}
		a.mode = ModeRenameFolder
		a.modal.Reset()
		a.modal.EditID = f.ID
		a.modal.NameInput.SetValue(f.Name)
		a.modal.NameInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Delete):
		if f := a.selectedFolder(); f != nil {
			a.mode = ModeConfirmDeleteFolder
			a.modal.EditID = f.ID
		}
		return a, nil
	}
	return a, nil
}

func (a App) handleFavoritePaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc && a.filterQuery != "" {
		a.filterQuery = ""
		a.favCursor = 0
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Down):
		if a.favCursor < len(a.visibleFavorites())-1 {
			a.favCursor++
		}
		return a, a.maybeLoadMore()

	case key.Matches(msg, a.keys.Up):
		if a.favCursor > 0 {
			a.favCursor--
		}
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		if n := len(a.visibleFavorites()); n > 0 {
			a.favCursor = n - 1
		}
		return a, a.maybeLoadMore()

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeLocalFilter
		a.modal.FilterInput.Reset()
		a.modal.FilterInput.Placeholder = "Filter titles..."
		a.modal.FilterInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Open):
		if f := a.selectedFavorite(); f != nil {
			return a, openURLCmd(f.URL)
		}
		return a, nil

	case key.Matches(msg, a.keys.YankURL):
		if f := a.selectedFavorite(); f != nil {
			return a, yankURLCmd(f.URL)
		}
		return a, nil

	case key.Matches(msg, a.keys.Edit):
		f := a.selectedFavorite()
		if f == nil {
			return a, nil
		}
		a.mode = ModeEditFavorite
		a.modal.Reset()
		a.modal.EditID = f.ID
		a.modal.NameInput.Placeholder = "Title"
		a.modal.NameInput.SetValue(f.Title)
		a.modal.SummaryInput.SetValue(f.Summary)
		a.modal.NameInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.EditTags):
		f := a.selectedFavorite()
		if f == nil {
			return a, nil
		}
		a.mode = ModeEditTags
		a.modal.Reset()
		a.modal.EditID = f.ID
		a.modal.TagsInput.SetValue(strings.Join(f.TagNames(), ", "))
		a.modal.TagsInput.Focus()
		a.modal.TagsInput.CursorEnd()
		return a, tea.Batch(loadTagsCmd(a.client), textinput.Blink)

	case key.Matches(msg, a.keys.Delete):
		if f := a.selectedFavorite(); f != nil {
			a.mode = ModeConfirmDeleteFavorite
			a.modal.EditID = f.ID
		}
		return a, nil
	}
	return a, nil
}

func (a App) handleTagsViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.tagCursor < len(a.tagCounts)-1 {
			a.tagCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.tagCursor > 0 {
			a.tagCursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.tagCounts) > 0 {
			a.tagCursor = len(a.tagCounts) - 1
		}

	case key.Matches(msg, a.keys.Refresh):
		return a, a.startTagCount()

	case key.Matches(msg, a.keys.Open):
		if a.tagCursor < len(a.tagCounts) {
			name := a.tagCounts[a.tagCursor].Tag.Name
			a.view = ViewBrowser
			a.pane = PaneFavorites
			return a, a.startScope(feed.TagScope(name))
		}
	}
	return a, nil
}

func (a App) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searchFocused = false
		a.searchInput.Blur()
		return a, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(a.searchInput.Value())
		if query == "" {
			return a, nil
		}
		a.searchGen++
		a.searching = true
		a.searchFocused = false
		a.searchInput.Blur()
		return a, vectorSearchCmd(a.client, query, a.searchGen)

	case tea.KeyCtrlC:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a App) handleSearchResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.searchCursor < a.searchFeed.Len()-1 {
			a.searchCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.searchCursor > 0 {
			a.searchCursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if n := a.searchFeed.Len(); n > 0 {
			a.searchCursor = n - 1
		}

	case key.Matches(msg, a.keys.TagFilter):
		a.searchFocused = true
		a.searchInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Open):
		if f := a.selectedFavorite(); f != nil {
			return a, openURLCmd(f.URL)
		}

	case key.Matches(msg, a.keys.YankURL):
		if f := a.selectedFavorite(); f != nil {
			return a, yankURLCmd(f.URL)
		}
	}
	return a, nil
}

func (a App) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.taskCursor < len(a.tasks)-1 {
			a.taskCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.taskCursor > 0 {
			a.taskCursor--
		}

	case key.Matches(msg, a.keys.Refresh):
		return a, loadTasksCmd(a.client, a.pollGen)

	case key.Matches(msg, a.keys.Open):
		if a.taskCursor < len(a.tasks) && a.tasks[a.taskCursor].Restartable() {
			return a, restartImportCmd(a.client)
		}
	}
	return a, nil
}

func (a App) handleFolderFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		name := strings.TrimSpace(a.modal.NameInput.Value())
		if name == "" {
			return a, nil
		}
		if a.mode == ModeRenameFolder {
			return a, renameFolderCmd(a.client, a.modal.EditID, name)
		}
		params := api.CreateFolderParams{Name: name, ParentID: model.RootFolderID}
		if a.modal.EditID != 0 {
			params.ParentID = a.modal.EditID
		}
		return a, createFolderCmd(a.client, params)
	}

	var cmd tea.Cmd
	a.modal.NameInput, cmd = a.modal.NameInput.Update(msg)
	return a, cmd
}

func (a App) handleConfirmFolderDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return a, deleteFolderCmd(a.client, a.modal.EditID)
	case "n", "esc", "q":
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleFavoriteFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if a.modal.NameInput.Focused() {
			a.modal.NameInput.Blur()
			a.modal.SummaryInput.Focus()
		} else {
			a.modal.SummaryInput.Blur()
			a.modal.NameInput.Focus()
		}
		return a, textinput.Blink

	case tea.KeyEnter:
		title := strings.TrimSpace(a.modal.NameInput.Value())
		summary := strings.TrimSpace(a.modal.SummaryInput.Value())
		return a, updateFavoriteCmd(a.client, a.modal.EditID, api.UpdateFavoriteParams{
			Title:   &title,
			Summary: &summary,
		})
	}

	var cmd tea.Cmd
	if a.modal.NameInput.Focused() {
		a.modal.NameInput, cmd = a.modal.NameInput.Update(msg)
	} else {
		a.modal.SummaryInput, cmd = a.modal.SummaryInput.Update(msg)
	}
	return a, cmd
}

func (a App) handleTagsFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyUp:
		if len(a.modal.TagSuggestions) > 0 && a.modal.TagSuggestionIdx > 0 {
			a.modal.TagSuggestionIdx--
		}
		return a, nil

	case tea.KeyDown:
		if a.modal.TagSuggestionIdx < len(a.modal.TagSuggestions)-1 {
			a.modal.TagSuggestionIdx++
		}
		return a, nil

	case tea.KeyTab:
		a.acceptTagSuggestion()
		return a, nil

	case tea.KeyEnter:
		names := splitTagNames(a.modal.TagsInput.Value())
		return a, saveTagsCmd(a.client, a.modal.EditID, names, a.modal.AllTags)
	}

	var cmd tea.Cmd
	a.modal.TagsInput, cmd = a.modal.TagsInput.Update(msg)
	a.refreshTagSuggestions()
	return a, cmd
}

// refreshTagSuggestions fuzzy-matches the fragment after the last comma
// against the known tags, excluding names already entered.
func (a *App) refreshTagSuggestions() {
	entered := splitTagNames(a.modal.TagsInput.Value())
	fragment := ""
	if v := a.modal.TagsInput.Value(); v != "" {
		parts := strings.Split(v, ",")
		fragment = strings.TrimSpace(parts[len(parts)-1])
	}

	// Exclusion is by tag id, so resolve the entered names against the
	// known tags first; the fragment itself must stay matchable.
	var exclude []model.Tag
	for _, t := range a.modal.AllTags {
		for _, name := range entered {
			if strings.EqualFold(t.Name, name) && !strings.EqualFold(name, fragment) {
				exclude = append(exclude, t)
			}
		}
	}

	matches := search.FilterTags(a.modal.AllTags, fragment, exclude)
	a.modal.TagSuggestions = nil
	for _, t := range matches {
		a.modal.TagSuggestions = append(a.modal.TagSuggestions, t.Name)
	}
	if a.modal.TagSuggestionIdx >= len(a.modal.TagSuggestions) {
		a.modal.TagSuggestionIdx = len(a.modal.TagSuggestions) - 1
	}
	if a.modal.TagSuggestionIdx < 0 && len(a.modal.TagSuggestions) > 0 {
		a.modal.TagSuggestionIdx = 0
	}
}

// acceptTagSuggestion replaces the fragment after the last comma with the
// selected suggestion.
func (a *App) acceptTagSuggestion() {
	if a.modal.TagSuggestionIdx < 0 || a.modal.TagSuggestionIdx >= len(a.modal.TagSuggestions) {
		return
	}
	suggestion := a.modal.TagSuggestions[a.modal.TagSuggestionIdx]
	value := a.modal.TagsInput.Value()
	if i := strings.LastIndex(value, ","); i >= 0 {
		value = value[:i+1] + " " + suggestion
	} else {
		value = suggestion
	}
	a.modal.TagsInput.SetValue(value)
	a.modal.TagsInput.CursorEnd()
	a.modal.TagSuggestions = nil
	a.modal.TagSuggestionIdx = -1
}

// splitTagNames parses a comma-separated tag list, dropping empties and
// duplicates while keeping order.
func splitTagNames(value string) []string {
	names := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		names = append(names, name)
	}
	return names
}

func (a App) handleConfirmFavoriteDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return a, deleteFavoriteCmd(a.client, a.modal.EditID)
	case "n", "esc", "q":
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleTagFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(a.modal.FilterInput.Value())
		a.mode = ModeNormal
		if query == "" {
			return a, nil
		}
		a.pane = PaneFavorites
		return a, a.startScope(feed.TagScope(query))
	}

	var cmd tea.Cmd
	a.modal.FilterInput, cmd = a.modal.FilterInput.Update(msg)
	return a, cmd
}

func (a App) handleLocalFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil

	case tea.KeyEnter:
		a.filterQuery = strings.TrimSpace(a.modal.FilterInput.Value())
		a.favCursor = 0
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.modal.FilterInput, cmd = a.modal.FilterInput.Update(msg)
	return a, cmd
}

func (a App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "S":
		a.mode = ModeNormal
		return a, nil

	case "j", "down":
		if a.modal.SettingsCursor < len(settingsActions)-1 {
			a.modal.SettingsCursor++
		}
		return a, nil

	case "k", "up":
		if a.modal.SettingsCursor > 0 {
			a.modal.SettingsCursor--
		}
		return a, nil

	case "enter":
		switch a.modal.SettingsCursor {
		case 0:
			return a, restartImportCmd(a.client)
		case 1:
			return a, reindexCmd(a.client)
		case 2:
			return a, resetDatabaseCmd(a.client)
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
