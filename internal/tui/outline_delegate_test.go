package tui

import (
	"strings"
	"testing"

	"outline-cli/internal/model"
	"outline-cli/internal/nav"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestRowText_IndentTwistyAndBadges(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	r := nav.Row{
		Node: model.Node{
			ID:    "section:a",
			Label: "Nameplate",
			Status: &model.Status{
				Completion: model.CompletionPartial,
				Errors:     2,
				Warnings:   1,
				Risk:       model.RiskHigh,
			},
			Children: []model.Node{{ID: "field:x"}},
		},
		Depth:         1,
		HasChildren:   true,
		DoneChildren:  1,
		TotalChildren: 3,
	}
	want := "  > [~] Nameplate 1/3 !2 ?1 high"
	if got := rowText(r); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	r.Expanded = true
	if got := rowText(r); !strings.HasPrefix(got, "  v ") {
		t.Fatalf("expected expanded twisty, got %q", got)
	}

	leaf := nav.Row{Node: model.Node{ID: "field:y", Label: "Serial"}}
	if got := rowText(leaf); got != "  Serial" {
		t.Fatalf("expected leaf without marker, got %q", got)
	}
}

func TestRowRenderer_FillsAndCutsToWidth(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	setGlyphs(glyphSetUnicode)

	d := newRowRenderer()
	r := nav.Row{Node: model.Node{
		ID:     "field:a",
		Label:  strings.Repeat("X", 80),
		Status: &model.Status{Completion: model.CompletionComplete},
	}}

	wide := d.render(r, 140, false)
	if !strings.Contains(wide, strings.Repeat("X", 80)) {
		t.Fatalf("expected full label in wide render")
	}
	if w := xansi.StringWidth(wide); w != 140 {
		t.Fatalf("expected width 140, got %d", w)
	}

	narrow := d.render(r, 30, true)
	if w := xansi.StringWidth(narrow); w != 30 {
		t.Fatalf("expected cut to 30 columns, got %d", w)
	}
	if d.render(r, 2, false) != "" {
		t.Fatalf("expected nothing for a too-narrow pane")
	}
}
