// Package picker is the minimal chooser behind "fav search": a flat list of
// results in server rank order, vim navigation, Enter opens the selection.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/favtui/fav/internal/model"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	subtle = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	markedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"})
	detailStyle = lipgloss.NewStyle().Foreground(subtle)
)

// Picker lets the user choose one favorite from a search result list.
type Picker struct {
	favorites []model.Favorite
	query     string
	cursor    int
	choice    int // index chosen with Enter, -1 until then
	cancelled bool
}

// New creates a Picker over the results, keeping server rank order.
func New(favorites []model.Favorite, query string) Picker {
	return Picker{favorites: favorites, query: query, choice: -1}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "j", "down":
		if p.cursor < len(p.favorites)-1 {
			p.cursor++
		}

	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}

	case "G":
		if len(p.favorites) > 0 {
			p.cursor = len(p.favorites) - 1
		}

	case "enter":
		p.choice = p.cursor
		return p, tea.Quit

	case "q", "esc", "ctrl+c":
		p.cancelled = true
		return p, tea.Quit
	}
	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%d results for %q", len(p.favorites), p.query)))
	b.WriteString("\n\n")

	for i, fav := range p.favorites {
		marker, style := "  ", titleStyle
		if i == p.cursor {
			marker, style = "> ", markedStyle
		}
		b.WriteString(marker + style.Render(fav.DisplayTitle()) + "\n")

		detail := fav.URL
		if names := fav.TagNames(); len(names) > 0 {
			detail += "  #" + strings.Join(names, " #")
		}
		b.WriteString("  " + detailStyle.Render(detail) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(detailStyle.Render(fmt.Sprintf("%d/%d   j/k move   enter open   q cancel", p.cursor+1, len(p.favorites))))
	return b.String()
}

// SelectedFavorite returns the chosen favorite, or nil when the picker was
// cancelled or left without a choice.
func (p Picker) SelectedFavorite() *model.Favorite {
	if p.cancelled || p.choice < 0 || p.choice >= len(p.favorites) {
		return nil
	}
	return &p.favorites[p.choice]
}

// Cancelled reports whether the user left without choosing.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
