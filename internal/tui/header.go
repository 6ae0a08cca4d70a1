package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/karatsuba/internal/format"
)

// runStatus is the state shown at the right end of the header.
type runStatus int

const (
	statusRunning runStatus = iota
	statusDone
	statusFailed
)

// HeaderModel renders the top bar: title, operand sizes, elapsed time and
// run status.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	xBits     int
	yBits     int
	status    runStatus
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, xBits, yBits int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		xBits:     xBits,
		yBits:     yBits,
	}
}

// SetDone freezes the elapsed timer and records whether every run
// succeeded.
func (h *HeaderModel) SetDone(failed bool) {
	h.endTime = time.Now()
	h.status = statusDone
	if failed {
		h.status = statusFailed
	}
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.status = statusRunning
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since start, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Karatsuba Trace Explorer"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	left := titleStyle.Render(titleText) +
		pipe + dimStyle.Render(fmt.Sprintf("%d x %d bits", h.xBits, h.yBits)) +
		pipe + elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))

	var status string
	switch h.status {
	case statusRunning:
		status = statusRunningStyle.Render("RUNNING")
	case statusDone:
		status = statusDoneStyle.Render("DONE")
	case statusFailed:
		status = statusErrorStyle.Render("FAILED")
	}

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(status), 1)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + status)
}
