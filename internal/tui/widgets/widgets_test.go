// ABOUTME: Tests for badges, stat bars and blocks
// ABOUTME: Checks levels, clamping and that blocks keep a fixed width

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/tui/icons"
)

func TestStatLevel(t *testing.T) {
	tests := []struct {
		value int
		want  StatusLevel
	}{
		{0, StatusCritical},
		{24, StatusCritical},
		{25, StatusWarning},
		{49, StatusWarning},
		{50, StatusOK},
		{100, StatusOK},
	}
	for _, tt := range tests {
		if got := StatLevel(tt.value); got != tt.want {
			t.Errorf("StatLevel(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
	if LevelFor("bogus") != StatusNeutral {
		t.Error("unknown level should be neutral")
	}
}

func TestBadges(t *testing.T) {
	if !strings.Contains(HungerBadge(true), "HUNGRY") {
		t.Error("expected HUNGRY badge")
	}
	if !strings.Contains(HungerBadge(false), "FED") {
		t.Error("expected FED badge")
	}
	if !strings.Contains(RoleBadge(true), "ADMIN") {
		t.Error("expected ADMIN badge")
	}
	if !strings.Contains(StatusText("low", StatusWarning), "low") {
		t.Error("expected status text")
	}
}

func TestStatBarWidth(t *testing.T) {
	cfg := DefaultStatBarConfig()
	cfg.Width = 10

	for _, v := range []int{-5, 0, 30, 100, 150} {
		bar := StatBar(v, cfg)
		if w := lipgloss.Width(bar); w != 12 {
			t.Errorf("StatBar(%d) width = %d, want 12", v, w)
		}
	}

	full := StatBar(100, cfg)
	if strings.Count(full, "█") != 10 {
		t.Errorf("expected a full bar, got %q", full)
	}
	empty := StatBar(0, cfg)
	if strings.Contains(empty, "█") {
		t.Errorf("expected an empty bar, got %q", empty)
	}
}

func TestStatBarWithLabel(t *testing.T) {
	cfg := DefaultStatBarConfig()
	if got := StatBarWithLabel(10, cfg); !strings.Contains(got, " 10") || !strings.Contains(got, "✗") {
		t.Errorf("expected critical label, got %q", got)
	}
	if got := StatBarWithLabel(40, cfg); !strings.Contains(got, "⚠") {
		t.Errorf("expected warning label, got %q", got)
	}
	if got := StatBarWithLabel(80, cfg); !strings.Contains(got, "✓") {
		t.Errorf("expected ok label, got %q", got)
	}
}

func TestCompactStatBar(t *testing.T) {
	if w := lipgloss.Width(CompactStatBar(55, 8)); w != 8 {
		t.Errorf("width = %d, want 8", w)
	}
}

func TestBlocksHaveFixedWidth(t *testing.T) {
	cfg := DefaultBlockConfig()
	blocks := map[string]string{
		"stat":  StatBlock(icons.Energy, "Energy", 42, "wants a nap", cfg),
		"count": CountBlock(icons.Food, "Hungry", 3, "of 7 pets", cfg),
		"long":  ValueBlock(icons.Paw, "A very long title that overflows", "a value that is far too long to fit", "details", cfg),
	}

	for name, b := range blocks {
		for i, line := range strings.Split(b, "\n") {
			if w := lipgloss.Width(line); w != cfg.Width {
				t.Errorf("%s line %d width = %d, want %d: %q", name, i, w, cfg.Width, line)
			}
		}
	}

	if !strings.Contains(blocks["stat"], "Energy") || !strings.Contains(blocks["stat"], "42") {
		t.Errorf("stat block missing content:\n%s", blocks["stat"])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("got %q", got)
	}
}
