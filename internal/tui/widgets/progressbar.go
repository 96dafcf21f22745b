// ABOUTME: Stat bar with visual threshold zones
// ABOUTME: Shows red/amber/green regions for stats where low is bad

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/client"
)

// StatBarConfig holds configuration for the stat bar
type StatBarConfig struct {
	Width         int
	CritThreshold int // below this the stat is critical
	WarnThreshold int // below this the stat wants care
	OKColor       lipgloss.Color
	WarnColor     lipgloss.Color
	CritColor     lipgloss.Color
	EmptyColor    lipgloss.Color
	ShowZones     bool // draw threshold markers in the empty part
}

// DefaultStatBarConfig matches the care thresholds.
func DefaultStatBarConfig() StatBarConfig {
	return StatBarConfig{
		Width:         20,
		CritThreshold: 25,
		WarnThreshold: 50,
		OKColor:       lipgloss.Color("#10B981"),
		WarnColor:     lipgloss.Color("#F59E0B"),
		CritColor:     lipgloss.Color("#EF4444"),
		EmptyColor:    lipgloss.Color("#374151"),
		ShowZones:     true,
	}
}

func clampStat(v int) int {
	return min(max(v, client.MinStat), client.MaxStat)
}

func (c StatBarConfig) colorFor(value int) lipgloss.Color {
	switch {
	case value < c.CritThreshold:
		return c.CritColor
	case value < c.WarnThreshold:
		return c.WarnColor
	default:
		return c.OKColor
	}
}

// StatBar renders value (0-100) as a bracketed bar. The whole filled part
// takes the color of the zone the value falls in.
func StatBar(value int, config StatBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	value = clampStat(value)

	filled := value * config.Width / client.MaxStat
	warnPos := config.WarnThreshold * config.Width / client.MaxStat
	critPos := config.CritThreshold * config.Width / client.MaxStat

	fillStyle := lipgloss.NewStyle().Foreground(config.colorFor(value))
	emptyStyle := lipgloss.NewStyle().Foreground(config.EmptyColor)

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < config.Width; i++ {
		switch {
		case i < filled:
			bar.WriteString(fillStyle.Render("█"))
		case config.ShowZones && (i == warnPos || i == critPos):
			bar.WriteString(emptyStyle.Render("│"))
		default:
			bar.WriteString(emptyStyle.Render("░"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// StatBarWithLabel appends the numeric value and a status glyph.
func StatBarWithLabel(value int, config StatBarConfig) string {
	value = clampStat(value)
	color := config.colorFor(value)

	var glyph string
	switch color {
	case config.CritColor:
		glyph = "✗"
	case config.WarnColor:
		glyph = "⚠"
	default:
		glyph = "✓"
	}

	style := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s %s", StatBar(value, config), style.Render(fmt.Sprintf("%3d", value)), style.Render(glyph))
}

// CompactStatBar renders a minimal bar for table cells.
func CompactStatBar(value, width int) string {
	if width <= 0 {
		width = 10
	}
	value = clampStat(value)
	filled := value * width / client.MaxStat

	color := DefaultStatBarConfig().colorFor(value)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
}
