package visualization

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvandessel/trustgrid/internal/constants"
	"github.com/nvandessel/trustgrid/internal/grid"
)

// WatchOptions configures a WatchModel.
type WatchOptions struct {
	// Interval is the pause between generations. Zero uses
	// constants.DefaultFrameInterval.
	Interval time.Duration

	// MaxSteps stops the animation after this many generations. Zero draws
	// the starting grid without advancing it.
	MaxSteps int

	// StopAtFixedPoint ends the animation at the first generation that
	// changes no cell.
	StopAtFixedPoint bool

	// Format is FormatText or FormatANSI. Anything else falls back to ANSI.
	Format Format

	// Title is shown above the grid.
	Title string
}

type tickMsg time.Time

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// WatchModel is a bubbletea model that advances a grid on a timer and
// redraws it after every generation. It quits on q, esc or ctrl+c, after
// MaxSteps generations, or at a fixed point when StopAtFixedPoint is set.
type WatchModel struct {
	grid     *grid.Grid
	opts     WatchOptions
	snap     grid.Snapshot
	steps    int
	changed  int
	fixed    bool
	quitting bool
	err      error
}

// NewWatchModel creates a model animating g from its current generation.
func NewWatchModel(g *grid.Grid, opts WatchOptions) WatchModel {
	if opts.Interval <= 0 {
		opts.Interval = constants.DefaultFrameInterval
	}
	if opts.MaxSteps < 0 {
		opts.MaxSteps = 0
	}
	if opts.Format != FormatText {
		opts.Format = FormatANSI
	}
	return WatchModel{grid: g, opts: opts, snap: g.Snapshot(), changed: -1}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the generation timer, or quits at once when there is
// nothing to advance.
func (m WatchModel) Init() tea.Cmd {
	if m.Done() {
		return tea.Quit
	}
	return tick(m.opts.Interval)
}

// Update handles key presses and timer ticks.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tickMsg:
		if m.Done() {
			return m, nil
		}
		if err := m.grid.Advance(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		next := m.grid.Snapshot()
		m.steps++
		m.changed = next.Changed(m.snap)
		m.snap = next
		if m.opts.StopAtFixedPoint && m.changed == 0 {
			m.fixed = true
			return m, tea.Quit
		}
		if m.steps >= m.opts.MaxSteps {
			return m, tea.Quit
		}
		return m, tick(m.opts.Interval)
	}
	return m, nil
}

// View draws the current generation.
func (m WatchModel) View() string {
	var b strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "trustgrid"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  generation %d", title, m.snap.Generation)))
	b.WriteString("\n\n")
	if m.opts.Format == FormatText {
		b.WriteString(RenderText(m.snap))
	} else {
		b.WriteString(RenderANSI(m.snap))
	}
	b.WriteString("\n")

	status := fmt.Sprintf("changed %d", m.changed)
	switch {
	case m.err != nil:
		status = "error: " + m.err.Error()
	case m.fixed:
		status = "fixed point reached"
	case m.steps >= m.opts.MaxSteps:
		status = fmt.Sprintf("stopped after %d generations", m.steps)
	case m.changed < 0:
		status = "starting"
	}
	b.WriteString(footerStyle.Render(status + "  |  " + Legend() + "  |  q to quit"))
	b.WriteString("\n")
	return b.String()
}

// Done reports whether the animation has stopped for any reason.
func (m WatchModel) Done() bool {
	return m.quitting || m.fixed || m.err != nil || m.steps >= m.opts.MaxSteps
}

// FixedPoint reports whether the animation stopped because a generation
// changed no cell.
func (m WatchModel) FixedPoint() bool { return m.fixed }

// Snapshot returns the most recent generation.
func (m WatchModel) Snapshot() grid.Snapshot { return m.snap }

// Err returns the error that stopped the animation, if any.
func (m WatchModel) Err() error { return m.err }
