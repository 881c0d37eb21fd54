package tui

import (
	"fmt"
	"strings"

	"outline-cli/internal/model"
	"outline-cli/internal/nav"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// rowRenderer draws one flattened outline row.
type rowRenderer struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRowRenderer() rowRenderer {
	return rowRenderer{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func twisty(r nav.Row) string {
	if !r.HasChildren {
		return " "
	}
	if r.Expanded {
		return glyphTwistyExpanded()
	}
	return glyphTwistyCollapsed()
}

func completionGlyph(c model.Completion) string {
	switch c {
	case model.CompletionComplete:
		return glyphComplete()
	case model.CompletionPartial:
		return glyphPartial()
	case model.CompletionEmpty:
		return glyphEmpty()
	default:
		return ""
	}
}

func progressCookie(done, total int) string {
	if total <= 0 {
		return ""
	}
	if done > total {
		done = total
	}
	return fmt.Sprintf(" %d/%d", done, total)
}

// rowText is the unstyled row, used for width checks and tests.
func rowText(r nav.Row) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.Depth))
	b.WriteString(twisty(r))
	b.WriteByte(' ')
	if g := completionGlyph(r.Node.Completion()); g != "" {
		b.WriteString(g)
		b.WriteByte(' ')
	}
	b.WriteString(r.Node.Label)
	b.WriteString(progressCookie(r.DoneChildren, r.TotalChildren))
	b.WriteString(badges(r.Node))
	return b.String()
}

func badges(n model.Node) string {
	st := n.Status
	if st == nil {
		return ""
	}
	var out string
	if st.Errors > 0 {
		out += fmt.Sprintf(" !%d", st.Errors)
	}
	if st.Warnings > 0 {
		out += fmt.Sprintf(" ?%d", st.Warnings)
	}
	if st.Risk != "" && st.Risk != model.RiskLow {
		out += " " + string(st.Risk)
	}
	return out
}

func (d rowRenderer) render(r nav.Row, width int, focused bool) string {
	if width < 4 {
		return ""
	}
	base := d.normal
	if focused {
		base = d.selected
	}
	seg := func(st lipgloss.Style, s string) string {
		if s == "" {
			return ""
		}
		if focused {
			st = st.Background(d.selected.GetBackground()).Bold(true)
		}
		return st.Render(s)
	}

	// Every segment is styled on its own so an inner reset doesn't clear the focused
	// row's background for the rest of the line.
	out := base.Render(strings.Repeat("  ", r.Depth) + twisty(r) + " ")
	if g := completionGlyph(r.Node.Completion()); g != "" {
		out += seg(styleCompletion(r.Node.Completion()), g) + base.Render(" ")
	}
	out += base.Render(r.Node.Label)
	out += seg(styleMuted(), progressCookie(r.DoneChildren, r.TotalChildren))
	if st := r.Node.Status; st != nil {
		if st.Errors > 0 {
			out += seg(styleErrorBadge, fmt.Sprintf(" !%d", st.Errors))
		}
		if st.Warnings > 0 {
			out += seg(styleWarningBadge, fmt.Sprintf(" ?%d", st.Warnings))
		}
		if st.Risk != "" && st.Risk != model.RiskLow {
			out += seg(styleRisk(st.Risk), " "+string(st.Risk))
		}
	}

	// Fill to full width so a focused row's background covers the whole line.
	curW := xansi.StringWidth(out)
	if curW < width {
		out += base.Render(strings.Repeat(" ", width-curW))
	} else if curW > width {
		out = xansi.Cut(out, 0, width)
	}
	return out
}
