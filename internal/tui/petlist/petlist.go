// ABOUTME: Pet list screen with care summary blocks and a selectable table
// ABOUTME: Shared by the owner's list and the admin list of all pets

package petlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/care"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/tui/icons"
	"github.com/markalston/petcare-cli/internal/tui/styles"
	"github.com/markalston/petcare-cli/internal/tui/widgets"
)

// blockRowHeight is the height of the summary blocks row plus a gap.
const blockRowHeight = 6

// List displays pets in a table.
type List struct {
	pets   []client.Pet
	loaded bool
	admin  bool
	table  table.Model
	width  int
	height int
}

var columns = []table.Column{
	{Title: "ID", Width: 5},
	{Title: "Name", Width: 16},
	{Title: "Type", Width: 6},
	{Title: "Color", Width: 8},
	{Title: "Energy", Width: 6},
	{Title: "Fun", Width: 5},
	{Title: "Hungry", Width: 6},
	{Title: "Needs", Width: 18},
}

// New creates a list. admin switches titles and empty-state text to the
// all-pets view.
func New(admin bool, width, height int) *List {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Primary).
		Bold(false)
	t.SetStyles(s)

	l := &List{admin: admin, table: t}
	l.SetSize(width, height)
	return l
}

// SetPets replaces the rows, keeping the cursor in range.
func (l *List) SetPets(pets []client.Pet) {
	l.pets = pets
	l.loaded = true

	rows := make([]table.Row, len(pets))
	for i, p := range pets {
		rows[i] = row(p)
	}
	l.table.SetRows(rows)
	if c := l.table.Cursor(); c >= len(rows) {
		l.table.SetCursor(max(0, len(rows)-1))
	}
}

func row(p client.Pet) table.Row {
	needs := care.Needs(p)
	names := make([]string, len(needs))
	for i, a := range needs {
		names[i] = string(a)
	}
	hungry := "no"
	if p.Hungry {
		hungry = "yes"
	}
	return table.Row{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		strings.ToLower(string(p.Type)),
		strings.ToLower(string(p.Color)),
		strconv.Itoa(p.Energy),
		strconv.Itoa(p.Fun),
		hungry,
		strings.Join(names, ", "),
	}
}

// Pets returns the pets currently shown.
func (l *List) Pets() []client.Pet {
	return l.pets
}

// Admin reports whether this is the all-pets list.
func (l *List) Admin() bool {
	return l.admin
}

// Selected returns the pet under the cursor.
func (l *List) Selected() (client.Pet, bool) {
	c := l.table.Cursor()
	if c < 0 || c >= len(l.pets) {
		return client.Pet{}, false
	}
	return l.pets[c], true
}

// Select moves the cursor to the pet with id, if present.
func (l *List) Select(id int64) {
	for i, p := range l.pets {
		if p.ID == id {
			l.table.SetCursor(i)
			return
		}
	}
}

// SetSize updates the list dimensions
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.table.SetHeight(max(3, height-blockRowHeight-3))
	l.table.SetWidth(max(20, width))
}

// Update forwards navigation keys to the table.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return cmd
}

// View renders the list
func (l *List) View() string {
	title := "My pets"
	if l.admin {
		title = "All pets"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Paw.String() + " " + title))
	sb.WriteString("\n")

	if !l.loaded {
		sb.WriteString("Loading pets...")
		return sb.String()
	}
	if len(l.pets) == 0 {
		if l.admin {
			sb.WriteString(styles.Subtitle.Render("No pets registered yet."))
		} else {
			sb.WriteString(styles.Subtitle.Render("No pets yet. Press n to create one."))
		}
		return sb.String()
	}

	sb.WriteString(l.summary())
	sb.WriteString("\n\n")
	sb.WriteString(l.table.View())
	return sb.String()
}

// summary renders care blocks, or a single line when the terminal is narrow.
func (l *List) summary() string {
	s := care.Summarize(l.pets)
	cfg := widgets.DefaultBlockConfig()

	if l.width < 4*cfg.Width {
		return styles.Subtitle.Render(fmt.Sprintf("%d pet(s) · %d hungry · %d need care", s.Total, s.Hungry, s.NeedingCare))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountBlock(icons.Paw, "Pets", s.Total, fmt.Sprintf("%d need care", s.NeedingCare), cfg),
		widgets.CountBlock(icons.Food, "Hungry", s.Hungry, hungryLabel(s), cfg),
		widgets.ValueBlock(icons.Energy, "Energy", fmt.Sprintf("%.0f avg", s.AvgEnergy),
			fmt.Sprintf("lowest %d (%s)", s.LowestEnergy, care.Level(s.LowestEnergy)), cfg),
		widgets.ValueBlock(icons.Fun, "Fun", fmt.Sprintf("%.0f avg", s.AvgFun),
			fmt.Sprintf("lowest %d (%s)", s.LowestFun, care.Level(s.LowestFun)), cfg),
	)
}

func hungryLabel(s care.Summary) string {
	if s.Hungry == 0 {
		return "everyone is fed"
	}
	return fmt.Sprintf("of %d pet(s)", s.Total)
}
