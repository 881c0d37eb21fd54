package tui

import (
	"fmt"
	"strings"

	"outline-cli/internal/filter"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var sections []string
	sections = append(sections, fitLine(m.headerLine(), m.width))
	if m.filtering || strings.TrimSpace(m.query) != "" {
		sections = append(sections, fitLine(m.filterLine(), m.width))
	}

	h := m.bodyHeight()
	outlineW, detailW := m.splitWidths()
	var body string
	switch {
	case outlineW > 0 && detailW > 0:
		gutter := normalizePane(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"), 1, h)
		gutter = lipgloss.NewStyle().Foreground(colorBorder).Render(gutter)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(m.outlineView(outlineW, h), outlineW, h),
			gutter,
			normalizePane(m.detail.View(), detailW, h),
		)
	case detailW > 0:
		body = normalizePane(m.detail.View(), detailW, h)
	default:
		body = normalizePane(m.outlineView(outlineW, h), outlineW, h)
	}
	sections = append(sections, body)
	sections = append(sections, fitLine(m.footerLine(), m.width))
	return strings.Join(sections, "\n")
}

// outlineView renders the rows inside the viewport. Only the window the navigator
// reports is materialized.
func (m Model) outlineView(width, height int) string {
	n := m.current()
	if m.loadErr != nil && len(m.all) == 0 {
		return styleErrorBadge.Render("load failed: " + m.loadErr.Error())
	}
	if n.Empty() {
		msg := "no nodes"
		if strings.TrimSpace(m.query) != "" {
			msg = fmt.Sprintf("no results for %q", m.query)
		}
		return styleMuted().Render(msg)
	}
	rows := n.Rows()
	win := n.Window()
	vp := n.Viewport()
	active := n.ActiveID()

	lines := make([]string, 0, height)
	for i := win.Start; i < win.End; i++ {
		if !vp.Contains(i) {
			continue
		}
		r := rows[i]
		lines = append(lines, m.rows.render(r, width, r.ID() == active))
	}
	return strings.Join(lines, "\n")
}

func (m Model) headerLine() string {
	n := m.current()
	title := strings.TrimSpace(m.opts.Title)
	if title == "" {
		title = "outline"
	}
	counts := fmt.Sprintf("%d rows", n.Len())
	if m.search != nil {
		counts = fmt.Sprintf("%d matches of %d", filter.Count(n.Nodes()), filter.Count(m.all))
	}
	if i := n.ActiveIndex(); i >= 0 {
		counts = fmt.Sprintf("%d/%d  ", i+1, n.Len()) + counts
	}
	return styleHeader().Render(title) + "  " + styleMuted().Render(counts)
}

func (m Model) filterLine() string {
	if m.filtering {
		return m.filter.View()
	}
	return styleMuted().Render("/ " + m.query + "  (esc clears)")
}

func (m Model) footerLine() string {
	if s := strings.TrimSpace(m.status); s != "" {
		return s
	}
	var parts []string
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleMuted().Render(strings.Join(parts, "  "))
}
