// ABOUTME: Login and registration forms for the TUI
// ABOUTME: Wraps huh forms as bubbletea models that emit submit and cancel messages

package authform

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/tui/styles"
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeRegister:
		return "register"
	default:
		return "unknown"
	}
}

// SubmittedMsg carries the completed form. Only the field matching Mode is set.
type SubmittedMsg struct {
	Mode         Mode
	Login        client.LoginRequest
	Registration client.Registration
}

// CancelledMsg is sent when the user presses esc.
type CancelledMsg struct {
	Mode Mode
}

// Form is a login or registration form.
type Form struct {
	mode    Mode
	form    *huh.Form
	err     string
	notice  string
	reg     client.Registration
	confirm string
}

// New returns a form in mode, prefilled with userName.
func New(mode Mode, userName string) *Form {
	f := &Form{mode: mode}
	f.reg.UserName = userName
	if mode == ModeRegister {
		f.form = f.registerForm()
	} else {
		f.form = f.loginForm()
	}
	return f
}

// Mode returns the form's mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// SetError shows msg above the form.
func (f *Form) SetError(msg string) {
	f.err = msg
}

// SetNotice shows an informational line above the form.
func (f *Form) SetNotice(msg string) {
	f.notice = msg
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return errors.New("enter a valid email address")
	}
	return nil
}

func (f *Form) loginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User name").
				Value(&f.reg.UserName).
				Validate(required("user name")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.reg.Password).
				Validate(required("password")),
		).Title("Log in").
			Description("ctrl+n creates an account"),
	).WithTheme(styles.FormTheme())
}

func (f *Form) registerForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User name").
				Value(&f.reg.UserName).
				Validate(required("user name")),
			huh.NewInput().
				Title("Email").
				Value(&f.reg.Email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.reg.Password).
				Validate(required("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&f.confirm).
				Validate(f.matchesPassword),
		).Title("Create an account").
			Description("esc returns to login"),
	).WithTheme(styles.FormTheme())
}

func (f *Form) matchesPassword(s string) error {
	if s != f.reg.Password {
		return errors.New("passwords do not match")
	}
	return nil
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		mode := f.mode
		return f, func() tea.Msg { return CancelledMsg{Mode: mode} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f, f.submit()
	}
	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	msg := SubmittedMsg{Mode: f.mode}
	name := strings.TrimSpace(f.reg.UserName)
	if f.mode == ModeRegister {
		msg.Registration = client.Registration{UserName: name, Password: f.reg.Password, Email: strings.TrimSpace(f.reg.Email)}
	} else {
		msg.Login = client.LoginRequest{UserName: name, Password: f.reg.Password}
	}
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	if f.notice != "" {
		sb.WriteString(styles.Notice.Render(f.notice))
		sb.WriteString("\n\n")
	}
	if f.err != "" {
		sb.WriteString(styles.StatusCritical.Render(f.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(f.form.View())
	return lipgloss.NewStyle().Padding(0, 2).Render(sb.String())
}
