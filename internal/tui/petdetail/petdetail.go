// ABOUTME: Pet detail view showing stat blocks, hunger and suggested care
// ABOUTME: Renders one pet; actions are handled by the root model

package petdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/care"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/tui/icons"
	"github.com/markalston/petcare-cli/internal/tui/styles"
	"github.com/markalston/petcare-cli/internal/tui/widgets"
)

// Detail displays a single pet
type Detail struct {
	pet   *client.Pet
	width int
}

// New creates a detail view
func New(pet *client.Pet, width int) *Detail {
	return &Detail{pet: pet, width: width}
}

// Pet returns the pet being shown.
func (d *Detail) Pet() *client.Pet {
	return d.pet
}

// SetPet replaces the pet after an action or edit.
func (d *Detail) SetPet(pet *client.Pet) {
	d.pet = pet
}

// SetWidth sets the available width
func (d *Detail) SetWidth(width int) {
	d.width = width
}

// View renders the pet
func (d *Detail) View() string {
	if d.pet == nil {
		return "Loading pet..."
	}
	p := d.pet

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.ForPetType(p.Type), p.Name)))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("#%d · %s %s",
		p.ID, strings.ToLower(string(p.Color)), strings.ToLower(string(p.Type)))))
	sb.WriteString("  ")
	sb.WriteString(widgets.HungerBadge(p.Hungry))
	sb.WriteString("\n\n")

	cfg := widgets.DefaultBlockConfig()
	energy := widgets.StatBlock(icons.Energy, "Energy", p.Energy, statNote(p.Energy, "rested", "sleepy", "exhausted"), cfg)
	fun := widgets.StatBlock(icons.Fun, "Fun", p.Fun, statNote(p.Fun, "happy", "bored", "miserable"), cfg)
	if d.width >= 2*cfg.Width+2 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, energy, "  ", fun))
	} else {
		sb.WriteString(energy + "\n" + fun)
	}
	sb.WriteString("\n\n")

	sb.WriteString(d.renderNeeds())
	return sb.String()
}

func statNote(value int, ok, warning, critical string) string {
	switch care.Level(value) {
	case care.LevelCritical:
		return critical
	case care.LevelWarning:
		return warning
	default:
		return ok
	}
}

func (d *Detail) renderNeeds() string {
	needs := care.Needs(*d.pet)
	if len(needs) == 0 {
		return widgets.StatusText(d.pet.Name+" is happy and healthy", widgets.StatusOK)
	}

	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render("Suggested care"))
	sb.WriteString("\n")
	for _, a := range needs {
		sb.WriteString(fmt.Sprintf("  %s %s\n", icons.ForAction(a), reason(a)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func reason(a client.Action) string {
	switch a {
	case client.ActionFeed:
		return "feed (f): hungry"
	case client.ActionSleep:
		return "sleep (s): low energy"
	case client.ActionPlay:
		return "play (p): bored"
	default:
		return string(a)
	}
}
