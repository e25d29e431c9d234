package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vrqtrack/internal/framerate"
	"vrqtrack/internal/vrqtrack"
)

// =============================================================================
// Messages
// =============================================================================

// TickMsg is sent periodically to poll the tracker for a fresh snapshot.
type TickMsg time.Time

// MetricsMsg carries an updated snapshot pushed from outside the
// bubbletea event loop (e.g. from the simulation driver).
type MetricsMsg struct {
	Metrics vrqtrack.Metrics
}

// QuitMsg signals the TUI should exit.
type QuitMsg struct{}

// =============================================================================
// Model
// =============================================================================

// MetricsSource provides the tracker snapshot the dashboard renders. The
// simulation driver satisfies this with *vrqtrack.Tracker directly.
type MetricsSource interface {
	Metrics() vrqtrack.Metrics
}

// Model represents the TUI state.
type Model struct {
	source MetricsSource

	metrics   vrqtrack.Metrics
	haveStats bool

	startTime  time.Time
	lastUpdate time.Time

	width  int
	height int

	quitting bool
}

// Config holds TUI configuration.
type Config struct {
	Source MetricsSource
}

// New creates a new TUI model.
func New(cfg Config) Model {
	return Model{
		source:     cfg.Source,
		startTime:  time.Now(),
		lastUpdate: time.Now(),
		width:      80,
		height:     24,
	}
}

// =============================================================================
// Bubble Tea Interface
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, tickCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.source != nil {
			m.metrics = m.source.Metrics()
			m.haveStats = true
		}
		m.lastUpdate = time.Now()
		return m, tickCmd()

	case MetricsMsg:
		m.metrics = msg.Metrics
		m.haveStats = true
		m.lastUpdate = time.Now()
		return m, nil

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// =============================================================================
// Commands
// =============================================================================

// tickCmd returns a command that sends a tick after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// =============================================================================
// Accessors
// =============================================================================

// Elapsed returns the time since the dashboard started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// DropRate is the fraction of released-or-skipped frames that never
// reached the screen, used to color the header status indicator.
func (m Model) DropRate() float64 {
	if !m.haveStats {
		return 0
	}
	denominator := m.metrics.FrameReleasedCount + m.metrics.FrameSkippedCount
	if denominator == 0 {
		return 0
	}
	return float64(m.metrics.FrameDroppedCount) / float64(denominator)
}

// =============================================================================
// Helpers for external use
// =============================================================================

// SendMetrics pushes a snapshot into a running program from outside its
// event loop.
func SendMetrics(p *tea.Program, m vrqtrack.Metrics) {
	if p != nil {
		p.Send(MetricsMsg{Metrics: m})
	}
}

// SendQuit sends a quit message to the TUI.
func SendQuit(p *tea.Program) {
	if p != nil {
		p.Send(QuitMsg{})
	}
}

// =============================================================================
// Formatting Helpers (used by view.go)
// =============================================================================

// formatDuration formats a duration as HH:MM:SS.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatNumber formats a count with K/M suffixes.
func formatNumber(n int64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// formatFrameRate renders a detected frame rate, including the two
// sentinel values a real fps reading never takes.
func formatFrameRate(fps float64) string {
	switch fps {
	case framerate.Pulldown3_2:
		return "3:2 pulldown"
	case framerate.Undetermined:
		return "undetermined"
	default:
		return fmt.Sprintf("%.2f fps", fps)
	}
}

// formatPercent formats a ratio as a percentage.
func formatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

// formatScore formats one of the tracker's bucket-divisor scalar scores.
func formatScore(score int64) string {
	return formatNumber(score)
}
