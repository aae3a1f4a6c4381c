package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals.
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (Enter, /, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalHints()
	case ModeCreateFolder, ModeRenameFolder:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeEditFavorite:
		return HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "next field"}},
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeEditTags:
		hints := HintSet{
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
		if len(a.modal.TagSuggestions) > 0 {
			hints.Nav = []Hint{
				{Key: "up/down", Desc: "suggest"},
				{Key: "Tab", Desc: "accept"},
			}
		}
		return hints
	case ModeTagFilter, ModeLocalFilter:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "filter"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeSettings:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "run"}},
			System: []Hint{{Key: "Esc", Desc: "close"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	}
	// Confirm modals show hints inline.
	return HintSet{}
}

// getNormalHints returns hints for ModeNormal, per view.
func (a App) getNormalHints() HintSet {
	switch a.view {
	case ViewTags:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "browse tag"}, {Key: "R", Desc: "recount"}},
			System: []Hint{{Key: "?", Desc: "help"}, {Key: "q", Desc: "quit"}},
		}
	case ViewSearch:
		if a.searchFocused {
			return HintSet{
				Action: []Hint{{Key: "Enter", Desc: "search"}},
				System: []Hint{{Key: "Esc", Desc: "results"}},
			}
		}
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "open"}, {Key: "/", Desc: "query"}},
			System: []Hint{{Key: "q", Desc: "quit"}},
		}
	case ViewTasks:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "restart"}, {Key: "R", Desc: "refresh"}},
			System: []Hint{{Key: "q", Desc: "quit"}},
		}
	}

	if a.pane == PaneFolders {
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}, {Key: "l", Desc: "favorites"}},
			Action: []Hint{{Key: "Enter", Desc: "select"}},
			Edit: []Hint{
				{Key: "a", Desc: "add"},
				{Key: "r", Desc: "rename"},
				{Key: "d", Desc: "del"},
			},
			System: []Hint{{Key: "?", Desc: "help"}, {Key: "q", Desc: "quit"}},
		}
	}
	return HintSet{
		Nav:    []Hint{{Key: "j/k", Desc: "move"}, {Key: "h", Desc: "folders"}},
		Action: []Hint{{Key: "Enter", Desc: "open"}, {Key: "/", Desc: "tag filter"}, {Key: "f", Desc: "filter"}},
		Edit: []Hint{
			{Key: "e", Desc: "edit"},
			{Key: "t", Desc: "tags"},
			{Key: "d", Desc: "del"},
		},
		System: []Hint{{Key: "?", Desc: "help"}, {Key: "q", Desc: "quit"}},
	}
}
