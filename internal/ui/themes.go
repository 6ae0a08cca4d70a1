package ui

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv names the environment variable that selects a colored theme.
const ThemeEnv = "KARATSUBA_THEME"

// Theme holds the ANSI escape sequences of one color scheme. Product digits
// use Success, operand sizes Secondary, recursion counters Info.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// palette lists 256-color indexes in Theme field order, Primary to Info.
type palette [6]uint8

func (p palette) theme(name string) Theme {
	fg := func(i int) string { return fmt.Sprintf("\033[38;5;%dm", p[i]) }
	return Theme{
		Name:      name,
		Primary:   fg(0),
		Secondary: fg(1),
		Success:   fg(2),
		Warning:   fg(3),
		Error:     fg(4),
		Info:      fg(5),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = palette{39, 245, 82, 220, 196, 141}.theme("dark")
	// LightTheme suits light terminal backgrounds.
	LightTheme = palette{27, 240, 28, 130, 124, 54}.theme("light")
	// NoColorTheme produces no escape sequences at all.
	NoColorTheme = Theme{Name: "none"}

	themesByName = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	current atomic.Pointer[Theme]
)

func init() {
	SetCurrentTheme(DarkTheme)
}

// TUITheme defines lipgloss colors for the trace explorer. Split, base and
// combine rows of the recursion trace each get their own color.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Split   lipgloss.TerminalColor
	Base    lipgloss.TerminalColor
	Combine lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default trace explorer palette.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#5F87FF"),
		Accent:  lipgloss.Color("#87AFFF"),
		Split:   lipgloss.Color("#FFB347"),
		Base:    lipgloss.Color("#9ECE6A"),
		Combine: lipgloss.Color("#BB9AF7"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// NoColorTUITheme renders everything in the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Split:   lipgloss.NoColor{},
		Base:    lipgloss.NoColor{},
		Combine: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns NoColorTUITheme when colors are off and
// DarkTUITheme otherwise.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme. It is safe for concurrent use.
func GetCurrentTheme() Theme {
	return *current.Load()
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) {
	current.Store(&t)
}

// SetTheme activates the theme called name ("dark", "light" or "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	t, ok := themesByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the theme for this process. Colors are off when noColor
// is set or when NO_COLOR is present in the environment, whatever its
// value. Otherwise KARATSUBA_THEME chooses between dark and light.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv(ThemeEnv))
}
