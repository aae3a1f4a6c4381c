package tui

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/favtui/fav/internal/api"
	"github.com/favtui/fav/internal/feed"
	"github.com/favtui/fav/internal/model"
)

// taskPollInterval is how often the tasks view refreshes while it is open.
const taskPollInterval = 3 * time.Second

func loadFoldersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		folders, err := client.Folders(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return foldersLoadedMsg{folders: folders}
	}
}

// loadPageCmd fetches one favorites page for the given scope. The generation
// token travels with the response so the feed can drop it if the scope
// changed while the request was in flight.
func loadPageCmd(client *api.Client, scope feed.Scope, gen, offset, limit int) tea.Cmd {
	return func() tea.Msg {
		var (
			page []model.Favorite
			err  error
		)
		ctx := context.Background()
		switch scope.Kind {
		case feed.ScopeFolder:
			page, err = client.FolderFavorites(ctx, scope.FolderID, offset, limit)
		case feed.ScopeTag:
			page, err = client.FuzzyTagFavorites(ctx, scope.Query, offset, limit)
		default:
			page, err = client.Favorites(ctx, offset, limit)
		}
		if err != nil {
			return pageFailedMsg{gen: gen, err: err}
		}
		return pageLoadedMsg{gen: gen, page: page}
	}
}

func vectorSearchCmd(client *api.Client, query string, gen int) tea.Cmd {
	return func() tea.Msg {
		results, err := client.VectorSearch(context.Background(), query, api.DefaultSearchLimit)
		if err != nil {
			return searchFailedMsg{gen: gen, err: err}
		}
		return searchDoneMsg{gen: gen, query: query, results: results}
	}
}

func createFolderCmd(client *api.Client, params api.CreateFolderParams) tea.Cmd {
	return func() tea.Msg {
		folder, err := client.CreateFolder(context.Background(), params)
		if err != nil {
			return errMsg{err}
		}
		return folderSavedMsg{folder: folder}
	}
}

func renameFolderCmd(client *api.Client, id int, name string) tea.Cmd {
	return func() tea.Msg {
		folder, err := client.RenameFolder(context.Background(), id, name)
		if err != nil {
			return errMsg{err}
		}
		return folderSavedMsg{folder: folder}
	}
}

func deleteFolderCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteFolder(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return folderDeletedMsg{id: id}
	}
}

func updateFavoriteCmd(client *api.Client, id int, params api.UpdateFavoriteParams) tea.Cmd {
	return func() tea.Msg {
		fav, err := client.UpdateFavorite(context.Background(), id, params)
		if err != nil {
			return errMsg{err}
		}
		return favoriteSavedMsg{favorite: fav}
	}
}

func deleteFavoriteCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteFavorite(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return favoriteDeletedMsg{id: id}
	}
}

// saveTagsCmd creates any tag names the server does not know yet, then
// replaces the favorite's tag set. The server response carries the assigned
// tag ids.
func saveTagsCmd(client *api.Client, id int, names []string, known []model.Tag) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		for _, name := range names {
			if !tagKnown(known, name) {
				if _, err := client.CreateTag(ctx, name); err != nil {
					return errMsg{err}
				}
			}
		}
		fav, err := client.UpdateFavorite(ctx, id, api.UpdateFavoriteParams{Tags: &names})
		if err != nil {
			return errMsg{err}
		}
		return favoriteSavedMsg{favorite: fav}
	}
}

func tagKnown(tags []model.Tag, name string) bool {
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func loadTagsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		tags, err := client.Tags(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return tagsLoadedMsg{tags: tags}
	}
}

// tagPageCmd fetches one page of the unfiltered favorites walk that feeds the
// client-side tag counts.
func tagPageCmd(client *api.Client, gen, skip, limit int) tea.Cmd {
	return func() tea.Msg {
		page, err := client.Favorites(context.Background(), skip, limit)
		if err != nil {
			return tagPageFailedMsg{gen: gen, err: err}
		}
		return tagPageMsg{gen: gen, page: page}
	}
}

func loadTasksCmd(client *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.Tasks(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{gen: gen, tasks: tasks}
	}
}

// taskTickCmd schedules the next poll. The generation token lets the app
// drop ticks scheduled before the tasks view was left.
func taskTickCmd(gen int) tea.Cmd {
	return tea.Tick(taskPollInterval, func(time.Time) tea.Msg {
		return taskTickMsg{gen: gen}
	})
}

func restartImportCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.RestartImport(context.Background()); err != nil {
			return errMsg{err}
		}
		return adminDoneMsg{action: "Import restarted"}
	}
}

func reindexCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.ReindexDatabase(context.Background()); err != nil {
			return errMsg{err}
		}
		return adminDoneMsg{action: "Reindex started"}
	}
}

func resetDatabaseCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.ResetDatabase(context.Background()); err != nil {
			return errMsg{err}
		}
		return adminDoneMsg{action: "Database reset"}
	}
}

func yankURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(url); err != nil {
			return errMsg{err}
		}
		return yankDoneMsg{url: url}
	}
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := OpenURL(url); err != nil {
			return errMsg{err}
		}
		return openedMsg{url: url}
	}
}

// OpenURL opens the URL in the default browser.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
