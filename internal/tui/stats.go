package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/karatsuba/internal/format"
	"github.com/agbru/karatsuba/internal/orchestration"
)

// historySize is the sample capacity before the panel is first sized.
const historySize = 120

// StatsModel displays the selected run, its recursion profile and runtime
// memory.
type StatsModel struct {
	result   *orchestration.CalculationResult
	runIndex int
	runCount int
	profile  []int

	progress *RingBuffer
	heap     *RingBuffer
	cpu      *RingBuffer
	peakHeap uint64
	mem      MemStatsMsg

	width  int
	height int
}

// NewStatsModel creates an empty stats panel.
func NewStatsModel() StatsModel {
	return StatsModel{
		progress: NewRingBuffer(historySize),
		heap:     NewRingBuffer(historySize),
		cpu:      NewRingBuffer(historySize),
	}
}

// SetSize updates dimensions, borders included.
func (s *StatsModel) SetSize(w, h int) {
	s.width, s.height = w, h
	inner := s.innerWidth()
	s.progress.Resize(inner)
	s.heap.Resize(2 * inner)
	s.cpu.Resize(inner)
}

func (s StatsModel) innerWidth() int {
	return max(s.width-4, 10)
}

// SetResult shows run index of count.
func (s *StatsModel) SetResult(result orchestration.CalculationResult, index, count int) {
	s.result = &result
	s.runIndex, s.runCount = index, count
	s.profile = nil
	if result.Trace != nil {
		s.profile = DepthProfile(result.Trace.Events())
	}
}

// UpdateProgress records the average progress of the runs.
func (s *StatsModel) UpdateProgress(avg float64) {
	s.progress.Push(avg * 100)
}

// UpdateMemStats records a memory sample. Heap samples are kept as a
// percentage of the peak seen so far.
func (s *StatsModel) UpdateMemStats(msg MemStatsMsg) {
	s.mem = msg
	s.cpu.Push(msg.CPUPercent)
	if msg.Alloc > s.peakHeap {
		s.peakHeap = msg.Alloc
	}
	if s.peakHeap > 0 {
		s.heap.Push(float64(msg.Alloc) / float64(s.peakHeap) * 100)
	}
}

// Reset clears the run and the sample histories.
func (s *StatsModel) Reset() {
	s.result = nil
	s.profile = nil
	s.progress.Reset()
	s.heap.Reset()
	s.cpu.Reset()
	s.peakHeap = 0
}

// View renders the panel.
func (s StatsModel) View() string {
	inner := s.innerWidth()
	var rows []string
	add := func(label, value string) {
		rows = append(rows, metricLabelStyle.Render(fmt.Sprintf("%-12s", label))+" "+metricValueStyle.Render(value))
	}

	if r := s.result; r != nil {
		add("Run:", fmt.Sprintf("%s (%d/%d)", r.Name, s.runIndex+1, s.runCount))
		if r.Err != nil {
			rows = append(rows, statusErrorStyle.Render(truncate(r.Err.Error(), inner)))
		} else {
			add("Duration:", format.FormatExecutionDuration(r.Duration))
			add("Product:", fmt.Sprintf("%s bits", format.FormatNumberString(fmt.Sprint(r.Product.BitLen()))))
			add("Calls:", format.FormatNumberString(fmt.Sprint(r.Stats.Calls)))
			add("Base cases:", format.FormatNumberString(fmt.Sprint(r.Stats.BaseCases)))
			add("Forks:", fmt.Sprint(r.Stats.Forks))
			add("Max depth:", fmt.Sprint(r.Stats.MaxDepth))
		}
	} else {
		add("Run:", "in progress")
	}

	if len(s.profile) > 0 {
		rows = append(rows, "", metricLabelStyle.Render("Calls per depth"))
		rows = append(rows, sparklineStyle.Render(RenderSparkline(scaleCounts(s.profile))))
	}

	rows = append(rows, "", metricLabelStyle.Render("Progress"))
	rows = append(rows, sparklineStyle.Render(RenderSparkline(s.progress.Slice())))

	rows = append(rows, "", metricLabelStyle.Render("Heap"))
	rows = append(rows, RenderBrailleChart(s.heap.Slice(), inner, 2)...)
	add("Heap:", format.FormatBytes(s.mem.Alloc)+" / "+format.FormatBytes(s.mem.HeapSys))
	add("GC:", fmt.Sprintf("%d (%.1fms)", s.mem.NumGC, float64(s.mem.PauseTotalNs)/1e6))
	add("Goroutines:", fmt.Sprint(s.mem.NumGoroutine))

	rows = append(rows, "", metricLabelStyle.Render("System CPU"))
	rows = append(rows, sparklineStyle.Render(RenderSparkline(s.cpu.Slice())))
	add("System:", fmt.Sprintf("CPU %.0f%%  RAM %.0f%%", s.mem.CPUPercent, s.mem.SysMemPercent))

	return panelStyle.
		Width(max(s.width-2, 0)).
		Height(max(s.height-2, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// scaleCounts maps counts to percentages of their maximum.
func scaleCounts(counts []int) []float64 {
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	out := make([]float64, len(counts))
	if peak == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(peak) * 100
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n || n < 4 {
		return s
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}
