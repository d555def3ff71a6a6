package config

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestColorToTcell(t *testing.T) {
	tests := []struct {
		name     string
		color    Color
		fallback tcell.Color
		expected tcell.Color
	}{
		{"empty uses fallback", "", tcell.ColorDarkBlue, tcell.ColorDarkBlue},
		{"named color", "red", tcell.ColorDarkBlue, tcell.ColorRed},
		{"hex color", "#ff0000", tcell.ColorDarkBlue, tcell.NewHexColor(0xff0000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.ToTcell(tt.fallback); got != tt.expected {
				t.Errorf("ToTcell(%q) = %v, expected %v", tt.color, got, tt.expected)
			}
		})
	}
}

func TestThemeSelectionStyleDefaults(t *testing.T) {
	style := Theme{}.SelectionStyle()
	fg, bg, _ := style.Decompose()
	if bg != tcell.ColorDarkCyan {
		t.Errorf("default selection background = %v, expected darkcyan", bg)
	}
	if fg != tcell.ColorWhite {
		t.Errorf("default selection foreground = %v, expected white", fg)
	}
}
