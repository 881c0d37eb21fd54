package tui

import (
	"os"
	"strconv"
	"strings"

	"outline-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must stay readable on light and dark backgrounds, so colors are adaptive and
// "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorBorder     lipgloss.TerminalColor = ac("250", "240")
	colorAccent     lipgloss.TerminalColor = ac("25", "75")

	colorComplete lipgloss.TerminalColor = ac("28", "78")
	colorPartial  lipgloss.TerminalColor = ac("136", "221")
	colorEmpty    lipgloss.TerminalColor = ac("245", "243")
	colorError    lipgloss.TerminalColor = ac("160", "203")
	colorWarning  lipgloss.TerminalColor = ac("166", "215")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleCompletion(c model.Completion) lipgloss.Style {
	switch c {
	case model.CompletionComplete:
		return lipgloss.NewStyle().Foreground(colorComplete)
	case model.CompletionPartial:
		return lipgloss.NewStyle().Foreground(colorPartial)
	default:
		return lipgloss.NewStyle().Foreground(colorEmpty)
	}
}

func styleRisk(r model.Risk) lipgloss.Style {
	switch r {
	case model.RiskCritical, model.RiskHigh:
		return lipgloss.NewStyle().Foreground(colorError).Bold(r == model.RiskCritical)
	case model.RiskMedium:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return styleMuted()
	}
}

var (
	styleErrorBadge   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleWarningBadge = lipgloss.NewStyle().Foreground(colorWarning)
)

// applyColorProfilePreference honors NO_COLOR and otherwise trusts TERM/COLORTERM when
// they claim more than termenv detected.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) OUTLINE_TUI_THEME=light|dark|auto
// 2) OUTLINE_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("OUTLINE_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("OUTLINE_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
