package layout

import "testing"

func TestSplitWidths(t *testing.T) {
	tests := []struct {
		name  string
		width int
	}{
		{name: "standard terminal", width: 80},
		{name: "wide terminal", width: 200},
		{name: "narrow terminal", width: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := SplitWidths(tt.width)
			if split.Sidebar < minSidebarWidth {
				t.Errorf("sidebar below minimum: %d", split.Sidebar)
			}
			if split.Main < minMainWidth {
				t.Errorf("main below minimum: %d", split.Main)
			}
		})
	}
}

func TestPaneHeight(t *testing.T) {
	if got := PaneHeight(24); got != 19 {
		t.Errorf("PaneHeight(24) = %d, want 19", got)
	}
	// Tiny terminals clamp to the minimum.
	if got := PaneHeight(6); got != minPaneHeight {
		t.Errorf("PaneHeight(6) = %d, want %d", got, minPaneHeight)
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name       string
		cursor     int
		total      int
		maxVisible int
		wantStart  int
		wantEnd    int
	}{
		{name: "all fit", cursor: 2, total: 5, maxVisible: 10, wantStart: 0, wantEnd: 5},
		{name: "cursor at top", cursor: 0, total: 20, maxVisible: 10, wantStart: 0, wantEnd: 10},
		{name: "cursor beyond window", cursor: 14, total: 20, maxVisible: 10, wantStart: 5, wantEnd: 15},
		{name: "cursor at bottom", cursor: 19, total: 20, maxVisible: 10, wantStart: 10, wantEnd: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisibleWindow(tt.cursor, tt.total, tt.maxVisible)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("got [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{name: "fits", text: "short", maxWidth: 10, want: "short"},
		{name: "truncated", text: "a very long title here", maxWidth: 10, want: "a very ..."},
		{name: "zero width", text: "anything", maxWidth: 0, want: ""},
		{name: "width below ellipsis", text: "anything", maxWidth: 2, want: ".."},
		{name: "unicode", text: "héllo wörld", maxWidth: 8, want: "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	styled := "\x1b[1mBold\x1b[0m plain"
	if got := StripANSI(styled); got != "Bold plain" {
		t.Errorf("StripANSI: got %q", got)
	}
	if got := VisibleLength(styled); got != 10 {
		t.Errorf("VisibleLength: got %d, want 10", got)
	}
}
