package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	entry       lipgloss.Style
	detail      lipgloss.Style
	warning     lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	sensorKey   lipgloss.Style
	sensorValue lipgloss.Style
	sensorMeta  lipgloss.Style
	unavailable lipgloss.Style
	barBracket  lipgloss.Style
	barFill     lipgloss.Style
	barEmpty    lipgloss.Style
	attribution lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		entry:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		sensorKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		sensorValue: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		sensorMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		unavailable: lipgloss.NewStyle().Faint(true).Italic(true),
		barBracket:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		attribution: lipgloss.NewStyle().Faint(true),
	}
}
