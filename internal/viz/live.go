package viz

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/experiment"
)

const (
	width           = 60
	height          = 18
	historyCapacity = 600
	frameInterval   = time.Second / 60
)

type TickMsg time.Time

// clock is the tick source handed to the scheduler. The scheduler resumes it
// when an animation starts and pauses it once everything is at rest; the
// model only arms a new tea.Tick while it runs.
type clock struct {
	running bool
	armed   bool
	last    time.Time
}

func (c *clock) Pause() { c.running = false }

func (c *clock) Resume() {
	c.running = true
	c.last = time.Time{}
}

// Model plays a scenario live in the terminal.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger
	player experiment.Player
	clock  *clock

	canvas   *Canvas
	bounds   Bounds
	trail    [][2]float64
	history  []float64
	held     bool
	selected int
	theme    int
	err      error
}

func NewModel(cfg *config.Config, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		cfg:     cfg,
		logger:  logger,
		canvas:  NewCanvas(width, height),
		history: make([]float64, 0, historyCapacity),
	}
	if err := m.restart(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) restart() error {
	armed := m.clock != nil && m.clock.armed
	m.clock = &clock{armed: armed}
	p, err := experiment.NewPlayer(m.cfg, m.clock, m.logger)
	if err != nil {
		return err
	}
	m.player = p
	m.trail = m.trail[:0]
	m.history = m.history[:0]
	m.bounds = initialBounds(m.cfg)
	m.observe()
	return nil
}

func initialBounds(cfg *config.Config) Bounds {
	b := Bounds{}
	point := func(v []float64) {
		x, y := 0.0, 0.0
		if len(v) > 0 {
			x = v[0]
		}
		if len(v) > 1 {
			y = v[1]
		}
		b.Include(x, y)
	}
	point(cfg.Initial.Value)
	for _, seg := range cfg.Segments {
		if len(seg.Target) > 0 {
			point(seg.Target)
		}
	}
	if b.MaxY == b.MinY {
		b.MinY, b.MaxY = -1, 1
	}
	return b
}

// Running reports whether the model is waiting on frames.
func (m *Model) Running() bool { return m.clock.running && !m.held }

func (m *Model) Player() experiment.Player { return m.player }

func (m *Model) arm() tea.Cmd {
	if !m.Running() || m.clock.armed {
		return nil
	}
	m.clock.armed = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.arm() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.held = !m.held
			m.clock.last = time.Time{}
		case "k":
			m.err = m.player.Kick()
		case "r":
			m.err = m.restart()
		case "tab":
			m.selected++
		case "up":
			m.adjustParam(1.05)
		case "down":
			m.adjustParam(0.95)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case TickMsg:
		m.clock.armed = false
		if m.Running() {
			m.tick(time.Time(msg))
		}
	}
	return m, m.arm()
}

func (m *Model) tick(now time.Time) {
	prev := m.clock.last
	if prev.IsZero() {
		prev = now.Add(-frameInterval)
	}
	m.clock.last = now
	if err := m.player.Tick(prev, now); err != nil {
		m.err = err
		m.logger.Error("playback failed", "err", err)
		m.clock.running = false
		return
	}
	m.observe()
}

func (m *Model) observe() {
	v := m.player.Value()
	x, y := v[0], 0.0
	if len(v) > 1 {
		y = v[1]
	}
	m.bounds.Include(x, y)
	m.trail = append(m.trail, [2]float64{x, y})
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
	m.history = append(m.history, x)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) paramKeys() []string {
	params := m.player.Params()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Model) adjustParam(factor float64) {
	keys := m.paramKeys()
	if len(keys) == 0 {
		return
	}
	key := keys[m.selected%len(keys)]
	val := m.player.Params()[key]
	if val == 0 {
		val = 1e-3
	}
	if err := m.player.SetParam(key, val*factor); err != nil {
		m.err = err
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	var px, py int
	for i, p := range m.trail {
		x, y := m.bounds.Project(m.canvas, p[0], p[1])
		if i > 0 {
			m.canvas.Line(px, py, x, y)
		}
		px, py = x, y
	}
}

func (m *Model) View() string {
	st := Themes[m.theme].styles()
	m.draw()

	status := strings.ToUpper(m.player.State())
	switch {
	case m.held:
		status = "HELD"
	case m.player.Done():
		status = "AT REST"
	}

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.cfg.Name)) + "\n")
	s.WriteString(status + "\n\n")
	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("x0"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}
	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2fs", m.player.Time())) + "\n")
	s.WriteString(st.label.Render("Segment") + st.value.Render(fmt.Sprintf("%d/%d", m.player.Segment()+1, len(m.cfg.Segments))) + "\n")
	s.WriteString(st.label.Render("Value") + st.value.Render(formatVec(m.player.Value())) + "\n")
	s.WriteString(st.label.Render("Velocity") + st.value.Render(formatVec(m.player.Velocity())) + "\n")

	s.WriteString("\nPARAMETERS\n")
	keys := m.paramKeys()
	if len(keys) == 0 {
		s.WriteString(st.label.Render("  (none)") + "\n")
	}
	params := m.player.Params()
	for i, k := range keys {
		line := fmt.Sprintf("%-10s %.2f", k, params[k])
		if i == m.selected%len(keys) {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.label.Render(line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + st.active.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render("SP:Hold K:Kick R:Restart Q:Quit\nTab/Up/Down:Tune T:Theme"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.canvas.Render(m.canvas.String()),
		st.stats.Render(s.String()),
	)
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RunLive blocks until the user quits.
func RunLive(cfg *config.Config, logger *slog.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
