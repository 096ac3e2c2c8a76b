package viz

import "github.com/charmbracelet/lipgloss"

// Channel colours: cyan, green, indigo, pink.
var channelColors = [...]lipgloss.Color{"#06B6D4", "#10B981", "#6366F1", "#EC4899"}

// Inks beyond the four channels.
const (
	inkCore = len(channelColors) + iota
	inkRing
)

var palette = func() []lipgloss.Style {
	p := make([]lipgloss.Style, 0, len(channelColors)+2)
	for _, c := range channelColors {
		p = append(p, lipgloss.NewStyle().Foreground(c))
	}
	p = append(p,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	)
	return p
}()

var (
	canvasStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#111827")).
			Padding(0, 1)
	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(36)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	frameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466"))
)

func statusLine(training bool) string {
	if training {
		return runningStyle.Render("TRAINING")
	}
	return pausedStyle.Render("STOPPED")
}

// ChannelColor returns the hex colour of a packet channel.
func ChannelColor(ch int) string {
	return string(channelColors[ch%len(channelColors)])
}
