package config

import (
	"github.com/gdamore/tcell/v2"
)

// Color is a theme color written as a name ("darkblue") or a #rrggbb hex
// string. The zero value means "use the built-in default".
type Color string

func (c Color) ToTcell(fallback tcell.Color) tcell.Color {
	if c == "" {
		return fallback
	}
	return tcell.GetColor(string(c))
}

// Theme holds the configurable colors of the dashboard chrome. Anything left
// unset keeps the built-in palette.
type Theme struct {
	HeaderBg    Color `yaml:"header_bg"`
	StatusBarBg Color `yaml:"status_bar_bg"`
	SelectionBg Color `yaml:"selection_bg"`
	SelectionFg Color `yaml:"selection_fg"`
	Border      Color `yaml:"border"`
}

// SelectionStyle builds the row-cursor style for the pod table.
func (t Theme) SelectionStyle() tcell.Style {
	return tcell.StyleDefault.
		Background(t.SelectionBg.ToTcell(tcell.ColorDarkCyan)).
		Foreground(t.SelectionFg.ToTcell(tcell.ColorWhite))
}
