package dashboard

import "github.com/charmbracelet/lipgloss"

// styles carries the theme-dependent lipgloss styles. Rebuilt whenever
// the user toggles dark mode.
type styles struct {
	header     lipgloss.Style
	tableHead  lipgloss.Style
	row        lipgloss.Style
	rowMounted lipgloss.Style
	cursor     lipgloss.Style
	success    lipgloss.Style
	errText    lipgloss.Style
	warning    lipgloss.Style
	subtle     lipgloss.Style
	modal      lipgloss.Style
	help       lipgloss.Style
}

func newStyles(dark bool) styles {
	s := styles{
		header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		tableHead: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("237")).
			Padding(0, 1),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2),
	}

	if dark {
		s.row = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.rowMounted = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
		s.cursor = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("238"))
		s.modal = s.modal.BorderForeground(lipgloss.Color("245"))
	} else {
		s.row = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
		s.rowMounted = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.cursor = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("254"))
		s.modal = s.modal.BorderForeground(lipgloss.Color("240"))
	}
	return s
}
