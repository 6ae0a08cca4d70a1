// Package format holds display helpers shared by the CLI and the TUI:
// durations, ETAs, progress bars, digit grouping and byte sizes.
package format
