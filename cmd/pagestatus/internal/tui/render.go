package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/pagestatus/cmd/pagestatus/internal/scene"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan  = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleStatus = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

const helpLine = "n/space: next status | a: advance all | v: toggle visibility | tab: next pane | d: tree dump | y: copy tree | q: quit"

// View renders the panes in a grid with a help line below.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := styleTitle.Render("pagestatus demo")
	footer := styleSubtle.Render(helpLine)
	if m.err != nil {
		footer = styleError.Render(m.err.Error()) + "\n" + footer
	} else if m.message != "" {
		footer = m.message + "\n" + footer
	}

	if m.showDump {
		dump := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Render(m.dumpView.View())
		return lipgloss.JoinVertical(lipgloss.Left, title, dump, footer)
	}

	cols := 2
	if m.width < 60 {
		cols = 1
	}
	rows := (len(m.panes) + cols - 1) / cols
	paneW := max(m.width/cols-2, 12)
	paneH := max((m.height-4)/rows-2, 4)

	var lines []string
	for r := 0; r < rows; r++ {
		var row []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(m.panes) {
				break
			}
			row = append(row, m.renderPane(m.panes[i], i == m.focus, paneW, paneH))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.JoinVertical(lipgloss.Left, title, grid, footer)
}

func (m *Model) renderPane(s *scene.Scene, focused bool, width, height int) string {
	border := colorGray
	if focused {
		border = colorCyan
	}

	current, ok := s.Transformer.CurrentStatusName()
	if !ok {
		current = "initial"
	}
	state := styleStatus.Render(current)
	if !s.Transformer.Visible() {
		state = styleSubtle.Render(current + " (hidden)")
	}
	header := fmt.Sprintf("%s  %s", styleTitle.Render(s.Name), state)

	body := Sketch(s.Root, width, height-1)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Height(height).
		Render(header + "\n" + strings.TrimRight(body, "\n"))
}
