package tui

import "github.com/favtui/fav/internal/model"

// Messages delivered by commands. Page and task messages carry the generation
// token the request started under so stale responses can be dropped.

type foldersLoadedMsg struct {
	folders []model.Folder
}

type pageLoadedMsg struct {
	gen  int
	page []model.Favorite
}

type pageFailedMsg struct {
	gen int
	err error
}

type searchDoneMsg struct {
	gen     int
	query   string
	results []model.Favorite
}

type searchFailedMsg struct {
	gen int
	err error
}

type folderSavedMsg struct {
	folder model.Folder
}

type folderDeletedMsg struct {
	id int
}

type favoriteSavedMsg struct {
	favorite model.Favorite
}

type favoriteDeletedMsg struct {
	id int
}

type tagsLoadedMsg struct {
	tags []model.Tag
}

// tagPageMsg is one page of the full favorites walk used to count tags.
type tagPageMsg struct {
	gen  int
	page []model.Favorite
}

// tagPageFailedMsg ends the count walk it belongs to.
type tagPageFailedMsg struct {
	gen int
	err error
}

type tasksLoadedMsg struct {
	gen   int
	tasks []model.Task
}

type taskTickMsg struct {
	gen int
}

type adminDoneMsg struct {
	action string
}

type yankDoneMsg struct {
	url string
}

type openedMsg struct {
	url string
}

type errMsg struct {
	err error
}
