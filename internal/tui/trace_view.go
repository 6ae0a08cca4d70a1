package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/karatsuba/internal/karatsuba"
)

// Filter selects which trace events are listed.
type Filter int

const (
	FilterAll Filter = iota
	FilterSplits
	FilterBases
	FilterCombines
)

func (f Filter) String() string {
	switch f {
	case FilterSplits:
		return "splits"
	case FilterBases:
		return "base cases"
	case FilterCombines:
		return "combines"
	}
	return "all events"
}

// Next returns the filter that follows f in the cycle.
func (f Filter) Next() Filter {
	return (f + 1) % (FilterCombines + 1)
}

func (f Filter) matches(k karatsuba.EventKind) bool {
	switch f {
	case FilterSplits:
		return k == karatsuba.EventSplit
	case FilterBases:
		return k == karatsuba.EventBase
	case FilterCombines:
		return k == karatsuba.EventCombine
	}
	return true
}

// MaxTraceRows bounds the rows rendered into the viewport.
const MaxTraceRows = 20000

// defaultDepth is the depth limit shown when a trace is loaded.
const defaultDepth = 3

type traceRow struct {
	Kind karatsuba.EventKind
	Text string
}

// buildRows renders the events that pass filter and lie at most maxDepth
// levels deep. At most limit rows are returned; the count of rows left out
// by the limit is returned as well.
func buildRows(events []karatsuba.Event, filter Filter, maxDepth, limit int) ([]traceRow, int) {
	var rows []traceRow
	omitted := 0
	for _, e := range events {
		if e.Depth > maxDepth || !filter.matches(e.Kind) {
			continue
		}
		for _, line := range e.Lines() {
			if len(rows) >= limit {
				omitted++
				continue
			}
			rows = append(rows, traceRow{Kind: e.Kind, Text: line})
		}
	}
	return rows, omitted
}

// DepthProfile returns the number of recursive calls made at each depth.
func DepthProfile(events []karatsuba.Event) []int {
	var profile []int
	for _, e := range events {
		if e.Kind == karatsuba.EventCombine {
			continue
		}
		for len(profile) <= e.Depth {
			profile = append(profile, 0)
		}
		profile[e.Depth]++
	}
	return profile
}

// TraceModel is the scrollable recursion trace panel.
type TraceModel struct {
	viewport viewport.Model
	events   []karatsuba.Event
	filter   Filter
	maxDepth int
	deepest  int
	rows     int
	omitted  int
	width    int
	height   int
}

// NewTraceModel creates an empty trace panel.
func NewTraceModel() TraceModel {
	return TraceModel{
		viewport: viewport.New(0, 0),
		maxDepth: defaultDepth,
	}
}

// SetEvents loads the events of a run, resets the depth limit and scrolls
// to the top.
func (t *TraceModel) SetEvents(events []karatsuba.Event) {
	t.events = events
	t.deepest = 0
	for _, e := range events {
		t.deepest = max(t.deepest, e.Depth)
	}
	t.maxDepth = min(defaultDepth, t.deepest)
	t.refresh()
	t.viewport.GotoTop()
}

// SetSize updates dimensions, borders included.
func (t *TraceModel) SetSize(w, h int) {
	t.width, t.height = w, h
	t.viewport.Width = max(w-2, 0)
	t.viewport.Height = max(h-3, 0)
	t.refresh()
}

// CycleFilter switches to the next event filter.
func (t *TraceModel) CycleFilter() {
	t.filter = t.filter.Next()
	t.refresh()
}

// Deeper shows one more recursion level.
func (t *TraceModel) Deeper() {
	if t.maxDepth < t.deepest {
		t.maxDepth++
		t.refresh()
	}
}

// Shallower hides the deepest shown recursion level.
func (t *TraceModel) Shallower() {
	if t.maxDepth > 0 {
		t.maxDepth--
		t.refresh()
	}
}

// GotoTop scrolls to the first row.
func (t *TraceModel) GotoTop() { t.viewport.GotoTop() }

// GotoBottom scrolls to the last row.
func (t *TraceModel) GotoBottom() { t.viewport.GotoBottom() }

func (t *TraceModel) refresh() {
	rows, omitted := buildRows(t.events, t.filter, t.maxDepth, MaxTraceRows)
	t.rows, t.omitted = len(rows), omitted

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(eventStyle(r.Kind).Render(r.Text))
	}
	if omitted > 0 {
		fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf("... %d more rows", omitted)))
	}
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("no trace events"))
	}
	t.viewport.SetContent(b.String())
}

// Update forwards scrolling keys to the viewport.
func (t TraceModel) Update(msg tea.Msg) (TraceModel, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the panel.
func (t TraceModel) View() string {
	status := dimStyle.Render(fmt.Sprintf(" %s | depth <= %d of %d | %d rows | %3.0f%%",
		t.filter, t.maxDepth, t.deepest, t.rows, t.viewport.ScrollPercent()*100))
	return panelStyle.
		Width(max(t.width-2, 0)).
		Height(max(t.height-2, 0)).
		Render(status + "\n" + t.viewport.View())
}
