package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/trainviz/internal/session"
	"github.com/san-kum/trainviz/internal/sim"
)

const (
	thumbCols = 28
	thumbRows = 12
)

// FramesModel cycles the image grid of a training session.
type FramesModel struct {
	sess *session.Session
	cfg  sim.Config
	gen  int
	err  error
}

func NewFramesModel(sess *session.Session, cfg sim.Config) FramesModel {
	if cfg.Interval <= 0 {
		cfg.Interval = sim.ImagesInterval
	}
	return FramesModel{sess: sess, cfg: cfg}
}

func (m FramesModel) Init() tea.Cmd { return nil }

func (m FramesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.sess.ToggleTraining() {
				m.gen++
				return m, tickAfter(m.cfg.Interval, m.gen)
			}
		case "m":
			m.err = m.sess.ToggleMode()
		case "+", "=":
			m.err = m.sess.SetImageSize(m.sess.ImageSize() + session.ImageSizeStep)
		case "-", "_":
			m.err = m.sess.SetImageSize(m.sess.ImageSize() - session.ImageSizeStep)
		}
	case tickMsg:
		if !m.sess.Training() || msg.gen != m.gen {
			return m, nil
		}
		_, m.err = m.sess.Advance(m.cfg.Dt)
		if m.cfg.MaxTicks > 0 && m.sess.Iteration() >= m.cfg.MaxTicks {
			m.sess.ToggleTraining()
			return m, nil
		}
		return m, tickAfter(m.cfg.Interval, m.gen)
	}
	return m, nil
}

func (m FramesModel) View() string {
	set := m.sess.Current()

	var s strings.Builder
	s.WriteString(headerStyle.Render("TRAINING ENVIRONMENT") + "\n")
	s.WriteString(fmt.Sprintf("%s  %s  %s  %s\n\n",
		statusLine(m.sess.Training()),
		labelStyle.Render("Mode: ")+valueStyle.Render(set.Mode.String()),
		labelStyle.Render("Size: ")+valueStyle.Render(fmt.Sprintf("%dpx", set.Size)),
		labelStyle.Render("Iteration: ")+valueStyle.Render(fmt.Sprintf("%d", set.Iteration)),
	))

	for i := 0; i < len(set.Frames); i += 2 {
		row := []string{thumbnail(set.Frames[i])}
		if i+1 < len(set.Frames) {
			row = append(row, thumbnail(set.Frames[i+1]))
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Train M:Mode +/-:Size Q:Quit"))
	return s.String()
}

func thumbnail(f session.Frame) string {
	return frameStyle.Render(RenderFrame(f.Pixels, f.Size, thumbCols, thumbRows))
}

func RunImages(sess *session.Session, cfg sim.Config) error {
	_, err := tea.NewProgram(NewFramesModel(sess, cfg), tea.WithAltScreen()).Run()
	return err
}
