// Package tui is the live terminal host: it mounts a timeline, drives the
// scan animator from bubbletea ticks and colors markers by highlight state.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scanline/internal/config"
	"scanline/internal/highlight"
	"scanline/internal/log"
	"scanline/internal/registry"
	"scanline/internal/scan"
	"scanline/internal/timeline"
)

const (
	labelWidth = 16
	minTrack   = 10
)

type frameMsg time.Time

// Model renders one mounted timeline. The model owns its animator and
// stops it on quit.
type Model struct {
	title    string
	tl       *timeline.Timeline
	anim     *scan.Animator
	geom     *registry.Analytic
	log      *log.Logger
	interval time.Duration

	width    int
	frame    scan.Frame
	peaks    []string
	quitting bool

	labelStyle lipgloss.Style
	trackStyle lipgloss.Style
	scanStyle  lipgloss.Style
	mutedStyle lipgloss.Style
	states     map[highlight.State]lipgloss.Style
}

// New mounts f's timeline. The track starts unmounted until the first
// window size message arrives.
func New(f *timeline.Fixture, cfg config.Config, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Discard()
	}
	tl := f.Timeline
	if tl == nil {
		tl = &timeline.Timeline{}
	}
	ids := make([]string, 0)
	for _, m := range tl.Markers() {
		ids = append(ids, m.ID)
	}
	geom := registry.NewAnalytic(tl, 0, 1)
	anim := scan.New(registry.New(ids), geom, cfg.ScanOptions(), logger)

	color := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &Model{
		title:      f.Title,
		tl:         tl,
		anim:       anim,
		geom:       geom,
		log:        logger.With("[tui]"),
		interval:   cfg.Scan.FrameInterval,
		labelStyle: color(cfg.Colors.Text).Width(labelWidth).MaxWidth(labelWidth),
		trackStyle: color(cfg.Colors.Track),
		scanStyle:  color(cfg.Colors.ScanLine).Bold(true),
		mutedStyle: color(cfg.Colors.Muted),
		states: map[highlight.State]lipgloss.Style{
			highlight.Idle:        color(cfg.Colors.Marker),
			highlight.Approaching: color(cfg.Colors.Approaching),
			highlight.Peak:        color(cfg.Colors.Peak).Bold(true),
			highlight.Fading:      color(cfg.Colors.Fading),
		},
	}
}

// Animator exposes the engine, mainly for tests and subscribers.
func (m *Model) Animator() *scan.Animator { return m.anim }

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.anim.Stop()
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		if f, ok := m.anim.Step(time.Time(msg)); ok {
			m.frame = f
			m.peaks = m.peakLabels(f)
		}
		return m, m.tick()
	}
	return m, nil
}

// resize feeds the new track width to the geometry and marks positions
// stale so the next frame measures again.
func (m *Model) resize(width int) {
	m.width = width
	track := m.trackWidth()
	m.geom.Resize(float64(track))
	m.anim.Invalidate()
	m.log.Debugf("resized: width=%d track=%d", width, track)
}

func (m *Model) trackWidth() int {
	w := m.width - labelWidth - 1
	if w < minTrack {
		return 0
	}
	return w
}

func (m *Model) peakLabels(f scan.Frame) []string {
	var labels []string
	for _, id := range f.In(highlight.Peak) {
		if it, ok := m.tl.Item(id); ok && it.Label != "" {
			labels = append(labels, it.Label)
		}
	}
	return labels
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	track := m.trackWidth()
	if track == 0 {
		return m.mutedStyle.Render("waiting for a wider terminal...")
	}

	var lines []string
	if m.title != "" {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(m.title))
	}
	scanCol := column(m.frame.Scan*float64(track), track)
	for _, row := range m.tl.Rows {
		lines = append(lines, m.labelStyle.Render(row.Label)+" "+m.renderTrack(row, track, scanCol))
	}

	status := fmt.Sprintf("scan %3.0f%%  approaching %d  peak %d  fading %d  (q to quit)",
		m.frame.Scan*100,
		len(m.frame.In(highlight.Approaching)),
		len(m.frame.In(highlight.Peak)),
		len(m.frame.In(highlight.Fading)))
	lines = append(lines, "", m.mutedStyle.Render(status))
	if len(m.peaks) > 0 {
		lines = append(lines, m.states[highlight.Peak].Render("▶ "+strings.Join(m.peaks, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderTrack draws one row: track glyphs, markers colored by state and
// the scan line. A marker on the scan column wins over the line.
func (m *Model) renderTrack(row timeline.Row, track, scanCol int) string {
	cells := make([]string, track)
	for i := range cells {
		cells[i] = m.trackStyle.Render("─")
	}
	cells[scanCol] = m.scanStyle.Render("│")

	for _, it := range row.Items {
		r, ok := m.geom.Marker(it.ID)
		if !ok {
			continue
		}
		col := column(r.X+r.W/2, track)
		cells[col] = m.states[m.frame.State(it.ID)].Render("●")
	}
	return strings.Join(cells, "")
}

func column(x float64, track int) int {
	c := int(math.Round(x))
	if c < 0 {
		return 0
	}
	if c >= track {
		return track - 1
	}
	return c
}
