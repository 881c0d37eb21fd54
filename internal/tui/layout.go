package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minPaneWidth = 20
	maxPaneWidth = 200
	// minDetailWidth is the narrowest detail pane worth drawing next to the outline.
	minDetailWidth = 24
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height lines, so
// lipgloss.JoinHorizontal lays split panes out stably.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLine cuts or pads ln to width columns, marking cuts with an ellipsis.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the width computation on pathological lines.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width+1)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + glyphEllipsis()
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

func clampPaneWidth(w int) int {
	if w < minPaneWidth {
		return minPaneWidth
	}
	if w > maxPaneWidth {
		return maxPaneWidth
	}
	return w
}

// splitWidths divides total columns between the outline pane and the detail pane (with
// a one column gutter). detail is 0 when the detail pane does not fit or is hidden.
func splitWidths(total, pane int, showDetail, outlineCollapsed bool) (outline, detail int) {
	if total <= 0 {
		return 0, 0
	}
	if outlineCollapsed && showDetail {
		return 0, total
	}
	if !showDetail {
		return total, 0
	}
	pane = clampPaneWidth(pane)
	if total-pane-1 < minDetailWidth {
		return total, 0
	}
	return pane, total - pane - 1
}
