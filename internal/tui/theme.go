package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the set of styles the view renders with.
type Theme struct {
	Name string

	Title      lipgloss.Style
	Favorite   lipgloss.Style
	Active     lipgloss.Style
	RecIdle    lipgloss.Style
	RecActive  lipgloss.Style
	RecOff     lipgloss.Style
	Text       lipgloss.Style
	Notice     lipgloss.Style
	Help       lipgloss.Style
	HelpKey    lipgloss.Style
	MenuItem   lipgloss.Style
	MenuCursor lipgloss.Style
	Border     lipgloss.Style
}

func darkTheme() Theme {
	return Theme{
		Name:       "dark",
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Favorite:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Active:     lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("220")).Bold(true),
		RecIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		RecActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		RecOff:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Italic(true),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		HelpKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Bold(true),
		MenuItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		MenuCursor: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		Border:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:       "light",
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Bold(true),
		Favorite:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Active:     lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("25")).Bold(true),
		RecIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		RecActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true),
		RecOff:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")).Italic(true),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		HelpKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Bold(true),
		MenuItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		MenuCursor: lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		Border:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
	}
}

// themeFor returns the light theme for "light" and the dark theme otherwise.
func themeFor(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}
