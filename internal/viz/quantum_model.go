package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trainviz/internal/noise"
	"github.com/san-kum/trainviz/internal/quantum"
	"github.com/san-kum/trainviz/internal/sim"
)

const (
	canvasCols      = 60
	canvasRows      = 30
	historyCapacity = 120
	gaugeWidth      = 20
)

// tickMsg carries the generation of the loop that scheduled it, so a loop
// stopped and restarted never runs twice.
type tickMsg struct {
	gen int
}

func tickAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// QuantumModel animates a quantum core.
type QuantumModel struct {
	core      *quantum.Core
	anchors   []quantum.SpiralAnchor
	cfg       sim.Config
	canvas    *Canvas
	snap      quantum.Snapshot
	training  bool
	gen       int
	iteration int
	mode      noise.Mode
	history   []float64
	spring    harmonica.Spring
	gaugePos  float64
	gaugeVel  float64
	err       error
}

func NewQuantumModel(core *quantum.Core, cfg sim.Config) QuantumModel {
	interval := cfg.Interval
	if interval <= 0 {
		interval = sim.QuantumInterval
		cfg.Interval = interval
	}
	fps := int(time.Second / interval)

	return QuantumModel{
		core:     core,
		anchors:  core.Anchors(),
		cfg:      cfg,
		canvas:   NewCanvas(canvasCols, canvasRows),
		snap:     core.Snapshot(),
		mode:     noise.SandPlot,
		history:  make([]float64, 0, historyCapacity),
		spring:   harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 0.8),
		gaugePos: core.EnergyLevel(),
	}
}

func (m QuantumModel) Init() tea.Cmd { return nil }

func (m QuantumModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.training = !m.training
			if m.training {
				m.gen++
				return m, tickAfter(m.cfg.Interval, m.gen)
			}
		case "m":
			m.mode = m.mode.Toggle()
		case "r":
			m.core.Reset()
			m.snap = m.core.Snapshot()
			m.iteration = 0
			m.history = m.history[:0]
			m.err = nil
		}
	case tickMsg:
		if !m.training || msg.gen != m.gen {
			return m, nil
		}
		m.step()
		if m.cfg.MaxTicks > 0 && m.iteration >= m.cfg.MaxTicks {
			m.training = false
			return m, nil
		}
		return m, tickAfter(m.cfg.Interval, m.gen)
	}
	return m, nil
}

// step advances the core one tick. A failed tick keeps the previous frame.
func (m *QuantumModel) step() {
	m.iteration++
	snap, err := m.core.Advance(m.cfg.Dt)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.snap = snap
	m.gaugePos, m.gaugeVel = m.spring.Update(m.gaugePos, m.gaugeVel, snap.EnergyLevel)

	m.history = append(m.history, float64(snap.PacketCount))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m QuantumModel) View() string {
	DrawQuantum(m.canvas, m.anchors, m.snap)
	canvasView := canvasStyle.Render(m.canvas.Render(palette))

	var s strings.Builder
	s.WriteString(headerStyle.Render("QUANTUM TRAINING") + "\n")
	s.WriteString(statusLine(m.training) + "\n\n")
	s.WriteString(labelStyle.Render("Iteration") + valueStyle.Render(fmt.Sprintf("%d", m.iteration)) + "\n")
	s.WriteString(labelStyle.Render("Mode") + valueStyle.Render(m.mode.String()) + "\n")
	s.WriteString(labelStyle.Render("Rotation") + valueStyle.Render(fmt.Sprintf("%.1f°", m.snap.Rotation)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(gauge(m.gaugePos, gaugeWidth)) + "\n")
	s.WriteString(labelStyle.Render("Packets") + valueStyle.Render(fmt.Sprintf("%d", m.snap.PacketCount)) + "\n")

	counts := m.snap.ChannelCounts()
	for ch, n := range counts {
		s.WriteString(labelStyle.Render(fmt.Sprintf("  ch%d", ch)) + palette[ch].Render(fmt.Sprintf("%d", n)) + "\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("packets"))
		s.WriteString("\n" + chart + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Train M:Mode R:Reset Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// gauge draws v in [0,1] as a bar; the spring may overshoot, so clamp.
func gauge(v float64, width int) string {
	v = max(0, min(1, v))
	filled := int(v * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + fmt.Sprintf("] %.2f", v)
}

func RunQuantum(core *quantum.Core, cfg sim.Config) error {
	_, err := tea.NewProgram(NewQuantumModel(core, cfg), tea.WithAltScreen()).Run()
	return err
}
