// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Colored inline badges for wellbeing levels, hunger and roles

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/care"
	"github.com/markalston/petcare-cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

type badgeColors struct {
	bg, fg lipgloss.Color
}

var palette = map[StatusLevel]badgeColors{
	StatusOK:       {lipgloss.Color("#10B981"), lipgloss.Color("#FFFFFF")},
	StatusWarning:  {lipgloss.Color("#F59E0B"), lipgloss.Color("#000000")},
	StatusCritical: {lipgloss.Color("#EF4444"), lipgloss.Color("#FFFFFF")},
	StatusInfo:     {lipgloss.Color("#3B82F6"), lipgloss.Color("#FFFFFF")},
	StatusNeutral:  {lipgloss.Color("#6B7280"), lipgloss.Color("#FFFFFF")},
}

func colorsFor(level StatusLevel) badgeColors {
	if c, ok := palette[level]; ok {
		return c
	}
	return palette[StatusNeutral]
}

// Badge renders text on a colored background.
func Badge(text string, level StatusLevel) string {
	c := colorsFor(level)
	return lipgloss.NewStyle().
		Background(c.bg).
		Foreground(c.fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// LevelFor maps a care level to a badge status.
func LevelFor(level string) StatusLevel {
	switch level {
	case care.LevelOK:
		return StatusOK
	case care.LevelWarning:
		return StatusWarning
	case care.LevelCritical:
		return StatusCritical
	default:
		return StatusNeutral
	}
}

// StatLevel grades a 0-100 stat.
func StatLevel(value int) StatusLevel {
	return LevelFor(care.Level(value))
}

// HungerBadge shows whether a pet needs feeding.
func HungerBadge(hungry bool) string {
	if hungry {
		return Badge("HUNGRY", StatusCritical)
	}
	return Badge("FED", StatusOK)
}

// RoleBadge marks administrators in the header.
func RoleBadge(admin bool) string {
	if admin {
		return Badge("ADMIN", StatusInfo)
	}
	return Badge("USER", StatusNeutral)
}

// StatusIcon returns the colored glyph for a status level.
func StatusIcon(level StatusLevel) string {
	style := lipgloss.NewStyle().Foreground(colorsFor(level).bg)
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	textStyle := lipgloss.NewStyle().Foreground(colorsFor(level).bg)
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}
