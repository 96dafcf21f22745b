// ABOUTME: Create and edit pet form as a bubbletea model
// ABOUTME: Two huh steps (identity, wellbeing) with a progress indicator

package petform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/tui/icons"
	"github.com/markalston/petcare-cli/internal/tui/styles"
)

// SubmittedMsg is sent when the last step completes. ID is zero for a new pet.
type SubmittedMsg struct {
	ID    int64
	Admin bool
	Input client.PetInput
}

// CancelledMsg is sent when the user leaves the form with esc.
type CancelledMsg struct{}

var stepNames = []string{"Identity", "Wellbeing"}

// Form collects a client.PetInput across two steps.
type Form struct {
	id    int64
	admin bool
	input client.PetInput
	form  *huh.Form
	step  int
	width int

	// huh inputs bind to strings
	energy string
	fun    string
}

// New returns a form for pet, or for a new pet when pet is nil. admin
// marks edits made through the admin routes.
func New(pet *client.Pet, admin bool) *Form {
	input := client.NewPetInput("", client.Dog, client.Brown)
	var id int64
	if pet != nil {
		id = pet.ID
		input = pet.Input()
	}

	f := &Form{
		id:     id,
		admin:  admin,
		input:  input,
		step:   1,
		energy: strconv.Itoa(input.Energy),
		fun:    strconv.Itoa(input.Fun),
	}
	f.form = f.identityForm()
	return f
}

// Editing reports whether the form updates an existing pet.
func (f *Form) Editing() bool {
	return f.id != 0
}

func (f *Form) heading() string {
	if f.Editing() {
		return fmt.Sprintf("Edit %s", f.input.Name)
	}
	return "New pet"
}

func (f *Form) identityForm() *huh.Form {
	typeOpts := make([]huh.Option[client.PetType], len(client.PetTypes))
	for i, t := range client.PetTypes {
		typeOpts[i] = huh.NewOption(label(string(t)), t)
	}
	colorOpts := make([]huh.Option[client.PetColor], len(client.PetColors))
	for i, c := range client.PetColors {
		colorOpts[i] = huh.NewOption(label(string(c)), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g., Rex").
				CharLimit(40).
				Value(&f.input.Name).
				Validate(validateName),
			huh.NewSelect[client.PetType]().
				Title("Type").
				Options(typeOpts...).
				Value(&f.input.Type),
			huh.NewSelect[client.PetColor]().
				Title("Color").
				Options(colorOpts...).
				Value(&f.input.Color),
		).Title("Step 1: Identity").
			Description(f.heading()),
	).WithTheme(styles.FormTheme())
}

func (f *Form) wellbeingForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Energy").
				Description("0 to 100").
				CharLimit(3).
				Value(&f.energy).
				Validate(validateStat),
			huh.NewInput().
				Title("Fun").
				Description("0 to 100").
				CharLimit(3).
				Value(&f.fun).
				Validate(validateStat),
			huh.NewConfirm().
				Title("Hungry?").
				Affirmative("Yes").
				Negative("No").
				Value(&f.input.Hungry),
		).Title("Step 2: Wellbeing").
			Description(f.heading()),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f.advance()
	}
	return f, cmd
}

func (f *Form) advance() (tea.Model, tea.Cmd) {
	switch f.step {
	case 1:
		f.input.Name = strings.TrimSpace(f.input.Name)
		f.step = 2
		f.form = f.wellbeingForm()
		return f, f.form.Init()
	case 2:
		// Validators already ran on both fields.
		f.input.Energy, _ = strconv.Atoi(strings.TrimSpace(f.energy))
		f.input.Fun, _ = strconv.Atoi(strings.TrimSpace(f.fun))
		msg := SubmittedMsg{ID: f.id, Admin: f.admin, Input: f.input}
		return f, func() tea.Msg { return msg }
	}
	return f, nil
}

// Input returns the values collected so far.
func (f *Form) Input() client.PetInput {
	return f.input
}

// SetWidth sets the width used for the progress panel
func (f *Form) SetWidth(width int) {
	f.width = width
}

// View implements tea.Model
func (f *Form) View() string {
	return f.renderProgress() + "\n\n" + f.form.View()
}

func (f *Form) renderProgress() string {
	width := max(f.width-1, 40)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var steps []string
	for i, name := range stepNames {
		n := i + 1
		var indicator string
		var nameStyle lipgloss.Style
		switch {
		case n < f.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case n == f.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}
		steps = append(steps, indicator+" "+nameStyle.Render(name))
	}
	stepsLine := strings.Join(steps, "    ")

	barWidth := width - 5
	filled := f.step * barWidth / len(stepNames)
	bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filled))

	title := lipgloss.NewStyle().Foreground(styles.Primary).Render("Progress")
	top := "┌─ " + title + " " + strings.Repeat("─", max(0, width-5-lipgloss.Width("Progress"))) + "┐"
	stepsRow := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"
	barRow := "│  " + bar + " │"
	bottom := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{top, stepsRow, barRow, bottom}, "\n"))
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func validateStat(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < client.MinStat || v > client.MaxStat {
		return fmt.Errorf("must be between %d and %d", client.MinStat, client.MaxStat)
	}
	return nil
}

// label turns "STRIPED" into "Striped".
func label(s string) string {
	if s == "" {
		return s
	}
	return s[:1] + strings.ToLower(s[1:])
}
