package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// palette maps core.Color to terminal styles. Flames and the HUD warning
// colors are bold so they stay readable on dim terminals.
var palette = newPalette()

func newPalette() map[core.Color]lipgloss.Style {
	fg := func(code string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return map[core.Color]lipgloss.Style{
		core.ColorDefault:       lipgloss.NewStyle(),
		core.ColorRed:           fg("1"),
		core.ColorGreen:         fg("2"),
		core.ColorYellow:        fg("3"),
		core.ColorBlue:          fg("4"),
		core.ColorMagenta:       fg("5"),
		core.ColorCyan:          fg("6"),
		core.ColorWhite:         fg("7"),
		core.ColorBrightRed:     fg("9").Bold(true),
		core.ColorBrightYellow:  fg("11").Bold(true),
		core.ColorBrightMagenta: fg("13"),
		core.ColorBrightCyan:    fg("14"),
		core.ColorBrightWhite:   fg("15").Bold(true),
		core.ColorOrange:        fg("208"),
		core.ColorGray:          fg("245"),
		core.ColorDarkGray:      fg("238"),
	}
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := palette[c]; ok {
		return style
	}
	return palette[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of one color share a single escape sequence, and uncolored blanks at
// the end of a row are dropped.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		end := rowEnd(s, y)
		for x := 0; x < end; {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < end; x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

// rowEnd returns the width of row y without its trailing uncolored blanks.
func rowEnd(s *core.Screen, y int) int {
	end := s.Width()
	for end > 0 {
		cell := s.GetCell(end-1, y)
		if cell.Rune != ' ' || cell.Color != core.ColorDefault {
			break
		}
		end--
	}
	return end
}
