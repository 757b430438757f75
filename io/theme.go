package argvio

import "github.com/charmbracelet/lipgloss"

// Theme provides semantic colors
type Theme struct {
	Primary, Success, Warning, Error, Info, Debug, Muted lipgloss.Color
}

// DefaultTheme16 returns a theme using basic 16 colors (ANSI colors 0-15).
func DefaultTheme16() Theme {
	return Theme{
		Primary: "12",
		Success: "10",
		Warning: "11",
		Error:   "9",
		Info:    "14",
		Debug:   "13",
		Muted:   "8",
	}
}

// DefaultTheme256 returns a theme using the 256-color palette.
func DefaultTheme256() Theme {
	t := DefaultTheme16()
	t.Debug = "141" // light purple
	t.Muted = "245"
	return t
}

// DefaultThemeTruecolor returns a theme using 24-bit RGB colors.
func DefaultThemeTruecolor() Theme {
	return Theme{
		Primary: "#5C94FC",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Error:   "#FF5555",
		Info:    "#8BE9FD",
		Debug:   "#BD93F9",
		Muted:   "#808080",
	}
}

// DefaultTheme returns the theme matching the manager's color level.
func DefaultTheme(m *IOManager) Theme {
	switch m.ColorLevel() {
	case 3:
		return DefaultThemeTruecolor()
	case 2:
		return DefaultTheme256()
	default:
		// colors are not rendered at level 0
		return DefaultTheme16()
	}
}
