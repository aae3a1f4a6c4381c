// Package layout holds the pure dimension and text helpers for the TUI:
// pane splits, scroll windows, truncation. Everything here is plain
// arithmetic so it can be tested without a terminal.
package layout

import (
	"regexp"
	"unicode/utf8"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

const (
	// heightReduction accounts for breadcrumb (1) + pane borders (2) +
	// status line (1) + help bar (1).
	heightReduction = 5

	minPaneHeight = 5

	// sidebarPercent is the folder pane's share of the terminal width.
	sidebarPercent = 30

	minSidebarWidth = 20
	minMainWidth    = 30

	// borderOverhead is the width consumed by the two panes' borders.
	borderOverhead = 6
)

// Split holds the widths of the folder sidebar and the favorites pane.
type Split struct {
	Sidebar int
	Main    int
}

// SplitWidths divides the terminal width between the folder sidebar and the
// favorites pane.
func SplitWidths(terminalWidth int) Split {
	usable := terminalWidth - borderOverhead
	sidebar := usable * sidebarPercent / 100
	if sidebar < minSidebarWidth {
		sidebar = minSidebarWidth
	}
	main := usable - sidebar
	if main < minMainWidth {
		main = minMainWidth
	}
	return Split{Sidebar: sidebar, Main: main}
}

// PaneHeight computes the content height for panes.
// Returns at least the minimum pane height.
func PaneHeight(terminalHeight int) int {
	height := terminalHeight - heightReduction
	if height < minPaneHeight {
		return minPaneHeight
	}
	return height
}

// VisibleWindow computes the [start, end) slice of a scrollable list that
// keeps the cursor visible within maxVisible rows.
func VisibleWindow(cursor, total, maxVisible int) (start, end int) {
	if maxVisible < 1 {
		maxVisible = 1
	}
	if total <= maxVisible {
		return 0, total
	}

	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}
	end = start + maxVisible
	if end > total {
		end = total
	}
	return start, end
}

// Truncate shortens text to maxWidth runes, appending an ellipsis when
// anything was cut.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text
	}

	ellipsisLen := utf8.RuneCountInString(Ellipsis)
	if maxWidth <= ellipsisLen {
		runes := []rune(Ellipsis)
		return string(runes[:maxWidth])
	}

	runes := []rune(text)
	return string(runes[:maxWidth-ellipsisLen]) + Ellipsis
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}
