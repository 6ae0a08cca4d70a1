package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/karatsuba/internal/errors"
	"github.com/agbru/karatsuba/internal/multiplier"
	"github.com/agbru/karatsuba/internal/natural"
	"github.com/agbru/karatsuba/internal/orchestration"
	"github.com/agbru/karatsuba/internal/sysmon"
)

// Session describes the multiplications explored by the TUI.
type Session struct {
	Multipliers []multiplier.Multiplier
	X, Y        natural.Natural
	Options     multiplier.Options
	Recorder    orchestration.RunRecorder
	Version     string
}

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the trace explorer.
const (
	headerHeight           = 1
	footerHeight           = 1
	minBodyHeight          = 6
	TracePanelWidthPercent = 65
)

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) traceWidth() int {
	return l.width * TracePanelWidthPercent / 100
}

func (l LayoutManager) statsWidth() int {
	return l.width - l.traceWidth()
}

// Model is the root bubbletea model of the trace explorer.
type Model struct {
	header HeaderModel
	trace  TraceModel
	stats  StatsModel
	help   help.Model
	keymap KeyMap

	ExecutionState
	LayoutManager

	session   Session
	parentCtx context.Context
	ref       *programRef
	results   []orchestration.CalculationResult
	selected  int
	reported  string
	sampler   *sysmon.Sampler
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, s Session) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	s.Options.Trace = true
	return Model{
		header: NewHeaderModel(s.Version, s.X.BitLen(), s.Y.BitLen()),
		trace:  NewTraceModel(),
		stats:  NewStatsModel(),
		help:   help.New(),
		keymap: DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		session:   s,
		parentCtx: parentCtx,
		ref:       &programRef{},
		sampler:   sysmon.NewSampler(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.session, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		m.stats.UpdateProgress(msg.AverageProgress)
		return m, nil

	case FinalResultMsg:
		m.reported = msg.Result.Name
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(m.sampler), tickCmd())

	case MemStatsMsg:
		m.stats.UpdateMemStats(msg)
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.results = msg.Results
		m.header.SetDone(msg.ExitCode != apperrors.ExitSuccess)
		if len(m.results) > 0 {
			m.selectRun(m.reportedIndex())
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Restart):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.header.Reset()
		m.stats.Reset()
		m.trace.SetEvents(nil)
		m.results = nil
		m.selected = 0
		m.reported = ""
		m.done = false
		m.exitCode = apperrors.ExitSuccess
		return m, tea.Batch(
			tickCmd(),
			startCalculationCmd(m.ref, m.ctx, m.session, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.NextRun):
		if len(m.results) > 1 {
			m.selectRun((m.selected + 1) % len(m.results))
		}
		return m, nil

	case key.Matches(msg, m.keymap.Filter):
		m.trace.CycleFilter()
		return m, nil

	case key.Matches(msg, m.keymap.Deeper):
		m.trace.Deeper()
		return m, nil

	case key.Matches(msg, m.keymap.Shallower):
		m.trace.Shallower()
		return m, nil

	case key.Matches(msg, m.keymap.Top):
		m.trace.GotoTop()
		return m, nil

	case key.Matches(msg, m.keymap.Bottom):
		m.trace.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layoutPanels()
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		var cmd tea.Cmd
		m.trace, cmd = m.trace.Update(msg)
		return m, cmd
	}

	return m, nil
}

// reportedIndex returns the index of the run reported by the presenter,
// or 0.
func (m Model) reportedIndex() int {
	for i, r := range m.results {
		if r.Name == m.reported {
			return i
		}
	}
	return 0
}

// selectRun shows the trace and stats of result i.
func (m *Model) selectRun(i int) {
	m.selected = i
	r := m.results[i]
	if r.Trace != nil {
		m.trace.SetEvents(r.Trace.Events())
	} else {
		m.trace.SetEvents(nil)
	}
	m.stats.SetResult(r, i, len(m.results))
}

// View renders the explorer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.trace.View(), m.stats.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.help.View(m.keymap))
}

func (m *Model) layoutPanels() {
	footer := footerHeight
	if m.help.ShowAll {
		footer = len(m.keymap.FullHelp()[0])
	}
	body := max(m.height-headerHeight-footer, minBodyHeight)
	m.header.SetWidth(m.width)
	m.help.Width = m.width
	m.trace.SetSize(m.traceWidth(), body)
	m.stats.SetSize(m.statsWidth(), body)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, s Session) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd returns a tea.Cmd that runs the multiplications.
func startCalculationCmd(ref *programRef, ctx context.Context, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteMultiplications(ctx, s.Multipliers, s.X, s.Y, s.Options, reporter, s.Recorder, io.Discard)
		presOpts := orchestration.PresentationOptions{XBits: s.X.BitLen(), YBits: s.Y.BitLen()}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)

		return CalculationCompleteMsg{Results: results, ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and system usage and returns
// a MemStatsMsg.
func sampleMemStatsCmd(sampler *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		sys := sampler.Sample()
		return MemStatsMsg{
			CPUPercent:    sys.CPUPercent,
			SysMemPercent: sys.MemPercent,
			Alloc:         ms.Alloc,
			HeapSys:       ms.HeapSys,
			NumGC:         ms.NumGC,
			PauseTotalNs:  ms.PauseTotalNs,
			NumGoroutine:  runtime.NumGoroutine(),
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
