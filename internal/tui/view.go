package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/radiotray/internal/catalog"
	"github.com/cristianoliveira/radiotray/internal/player"
)

var (
	nowPlayingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	metadataStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle       = lipgloss.NewStyle().Faint(true)
)

const helpLine = "enter play · s stop · f favorite · tab view · / filter · r refresh · +/- volume · q quit"

// View renders the station list, the filter line, the now-playing pane,
// and the help line.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	b.WriteString(m.nowPlayingView())
	b.WriteString("\n")

	if m.status != "" {
		if m.state == player.StateError {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.viewModeLabel() + "  " + helpLine))
	return b.String()
}

func (m *Model) nowPlayingView() string {
	current, playing := m.app.Player().Current()
	if !playing {
		return metadataStyle.Render("▷ stopped")
	}

	line := nowPlayingStyle.Render("▶ " + current.Name)
	if title := m.meta[player.MetaTitle]; title != "" {
		line += "\n  " + title
	}

	var details []string
	for _, key := range []string{player.MetaOrganization, player.MetaGenre, player.MetaBitrate} {
		if v := m.meta[key]; v != "" {
			details = append(details, v)
		}
	}
	details = append(details, fmt.Sprintf("vol %.0f%%", m.app.Settings().Volume*100))
	return line + "\n  " + metadataStyle.Render(strings.Join(details, " · "))
}

func (m *Model) viewModeLabel() string {
	if m.app.Catalog.ViewMode() == catalog.ViewFavorites {
		return "[favorites]"
	}
	return "[all]"
}
