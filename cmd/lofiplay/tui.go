package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/param"
)

const refreshInterval = 100 * time.Millisecond

type tickMsg time.Time

// player is the part of the processor the UI drives.
type player interface {
	Peak() float32
	Position() float64
	SetBypass(on bool)
	Bypassed() bool
	RequestReset()
	Clamped() int64
}

// model is the bubbletea model for the parameter panel. Parameter edits
// go straight into the atomic set the audio goroutine reads from.
type model struct {
	title  string
	params *param.Set
	player player
	cursor int
	peak   float32
}

func newModel(title string, params *param.Set, p player) model {
	return model{title: title, params: params, player: p}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the meter refresh.
func (m model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses and meter ticks.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.peak = m.player.Peak()
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.params.Len()-1 {
			m.cursor++
		}
	case "left", "h":
		m.params.At(m.cursor).Nudge(-1)
	case "right", "l":
		m.params.At(m.cursor).Nudge(1)
	case "shift+left", "H":
		m.params.At(m.cursor).Nudge(-10)
	case "shift+right", "L":
		m.params.At(m.cursor).Nudge(10)
	case " ", "b":
		m.player.SetBypass(!m.player.Bypassed())
	case "r":
		m.player.RequestReset()
	case "d":
		m.params.Reset()
	}
	return m, nil
}

// View renders the panel.
func (m model) View() string {
	var s strings.Builder

	state := "processing"
	if m.player.Bypassed() {
		state = "bypassed"
	}
	fmt.Fprintf(&s, "%s  [%s]  %6.1fs\n\n", m.title, state, m.player.Position())

	for i := range m.params.Len() {
		p := m.params.At(i)
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&s, "%s%-10s %s\n", cursor, p.Name, p.Format(p.Value()))
	}

	fmt.Fprintf(&s, "\npeak %s %6.1f dB\n", meter(m.peak, 30), core.LinearToDB(float64(m.peak)))
	if n := m.player.Clamped(); n > 0 {
		fmt.Fprintf(&s, "engine clamped %d parameter states\n", n)
	}
	s.WriteString("\n↑/↓ select  ←/→ adjust  shift+←/→ coarse  b bypass  r reset  d defaults  q quit\n")
	return s.String()
}

// meter draws a bar over a -60..0 dB range.
func meter(peak float32, width int) string {
	filled := 0
	if db := core.LinearToDB(float64(peak)); core.IsFinite(db) {
		filled = core.ClampInt(int((db+60)/60*float64(width)), 0, width)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", width-filled) + "]"
}
