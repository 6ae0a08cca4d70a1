// Package ui holds the color themes shared by the command-line output and
// the trace explorer. CLI code reads ANSI escape sequences through the
// Color* functions; the TUI reads lipgloss colors from TUITheme.
//
// Colors are disabled by --no-color or by the NO_COLOR environment variable.
package ui
