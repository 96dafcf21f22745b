// ABOUTME: Delete confirmation dialog shown before removing a pet
// ABOUTME: A single huh confirm field that reports its answer as a message

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/tui/styles"
)

// confirmResultMsg reports the answer. Esc counts as no.
type confirmResultMsg struct {
	confirmed bool
	pet       client.Pet
	admin     bool
}

type confirmDialog struct {
	form  *huh.Form
	yes   bool
	pet   client.Pet
	admin bool
}

func newConfirm(pet client.Pet, admin bool) *confirmDialog {
	d := &confirmDialog{pet: pet, admin: admin}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s (#%d)?", pet.Name, pet.ID)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&d.yes),
		),
	).WithTheme(styles.FormTheme())
	return d
}

func (d *confirmDialog) Init() tea.Cmd {
	return d.form.Init()
}

func (d *confirmDialog) result(yes bool) tea.Cmd {
	msg := confirmResultMsg{confirmed: yes, pet: d.pet, admin: d.admin}
	return func() tea.Msg { return msg }
}

func (d *confirmDialog) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return d.result(false)
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}
	if d.form.State == huh.StateCompleted {
		return d.result(d.yes)
	}
	return cmd
}

func (d *confirmDialog) View() string {
	return d.form.View()
}
