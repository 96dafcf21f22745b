// ABOUTME: Compact bordered blocks for pet stats and counts
// ABOUTME: Draws the title inside the top border with a value, bar and details

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/tui/icons"
)

// BlockConfig holds configuration for a block
type BlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultBlockConfig returns sensible defaults
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		Width:       26,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#7C3AED"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

type block struct {
	cfg   BlockConfig
	inner int
	lines []string
}

func newBlock(icon icons.Icon, title string, cfg BlockConfig) *block {
	if cfg.Width <= 0 {
		cfg.Width = DefaultBlockConfig().Width
	}
	b := &block{cfg: cfg, inner: cfg.Width - 4}

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), cfg.Width-5)
	border := lipgloss.NewStyle().Foreground(cfg.BorderColor)
	// ┌─ title ───┐ spans cfg.Width cells.
	fill := max(0, cfg.Width-5-lipgloss.Width(titleStr))
	b.lines = append(b.lines,
		border.Render("┌─ ")+lipgloss.NewStyle().Foreground(cfg.TitleColor).Render(titleStr)+border.Render(" "+strings.Repeat("─", fill)+"┐"))
	return b
}

// row pads rendered content to the inner width between side borders.
func (b *block) row(content string) {
	border := lipgloss.NewStyle().Foreground(b.cfg.BorderColor)
	pad := max(0, b.inner-lipgloss.Width(content))
	b.lines = append(b.lines, border.Render("│ ")+content+strings.Repeat(" ", pad)+border.Render(" │"))
}

func (b *block) String() string {
	border := lipgloss.NewStyle().Foreground(b.cfg.BorderColor)
	return strings.Join(append(b.lines, border.Render("└"+strings.Repeat("─", b.cfg.Width-2)+"┘")), "\n")
}

// StatBlock renders a 0-100 stat with its bar and a details line.
func StatBlock(icon icons.Icon, title string, value int, details string, cfg BlockConfig) string {
	b := newBlock(icon, title, cfg)

	barCfg := DefaultStatBarConfig()
	barCfg.Width = max(4, b.inner-8)
	b.row(StatBarWithLabel(value, barCfg))
	b.row(lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render(truncate(details, b.inner)))
	return b.String()
}

// ValueBlock renders a single emphasized value with a subtitle.
func ValueBlock(icon icons.Icon, title, value, subtitle string, cfg BlockConfig) string {
	b := newBlock(icon, title, cfg)
	b.row(lipgloss.NewStyle().Foreground(b.cfg.ValueColor).Bold(true).Render(truncate(value, b.inner)))
	b.row(lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render(truncate(subtitle, b.inner)))
	return b.String()
}

// CountBlock renders a count such as the number of hungry pets.
func CountBlock(icon icons.Icon, title string, count int, label string, cfg BlockConfig) string {
	return ValueBlock(icon, title, fmt.Sprintf("%d", count), label, cfg)
}

// truncate shortens s to maxLen cells with an ellipsis.
func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:min(len(r), maxLen)])
	}
	for len(r) > 0 && lipgloss.Width(string(r))+3 > maxLen {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
