package tui

import "testing"

func TestApplyGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	t.Setenv("OUTLINE_TUI_GLYPHS", "")
	applyGlyphPreference("ascii")
	if glyphs() != glyphSetASCII {
		t.Fatalf("expected config to select ascii")
	}
	if glyphTwistyCollapsed() != ">" || glyphTwistyExpanded() != "v" || glyphComplete() != "[x]" {
		t.Fatalf("unexpected ascii glyphs")
	}

	t.Setenv("OUTLINE_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if glyphs() != glyphSetUnicode {
		t.Fatalf("expected env to win over config")
	}
	if glyphTwistyCollapsed() != "▸" || glyphPartial() != "◐" {
		t.Fatalf("unexpected unicode glyphs")
	}

	t.Setenv("OUTLINE_TUI_GLYPHS", "wingdings")
	applyGlyphPreference("")
	if glyphs() != glyphSetUnicode {
		t.Fatalf("expected unknown value to be ignored")
	}
}
