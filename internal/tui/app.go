// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/debuglog"
	"github.com/markalston/petcare-cli/internal/session"
	"github.com/markalston/petcare-cli/internal/tui/authform"
	"github.com/markalston/petcare-cli/internal/tui/icons"
	"github.com/markalston/petcare-cli/internal/tui/petdetail"
	"github.com/markalston/petcare-cli/internal/tui/petform"
	"github.com/markalston/petcare-cli/internal/tui/petlist"
	"github.com/markalston/petcare-cli/internal/tui/styles"
	"github.com/markalston/petcare-cli/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenPets
	ScreenDetail
	ScreenForm
	ScreenAdmin
	ScreenConfirm
)

// Layout constants
const (
	minTerminalWidth = 80 // frame never renders narrower than this
	panelPadding     = 4  // border plus horizontal padding of a panel
)

type loginResultMsg struct {
	resp *client.LoginResponse
	req  client.LoginRequest
	err  error
}

type registerResultMsg struct {
	userName string
	err      error
}

type petsLoadedMsg struct {
	pets  []client.Pet
	admin bool
	err   error
}

type petLoadedMsg struct {
	pet *client.Pet
	err error
}

type actionDoneMsg struct {
	action client.Action
	pet    *client.Pet
	err    error
}

type petSavedMsg struct {
	pet     *client.Pet
	created bool
	admin   bool
	err     error
}

type petDeletedMsg struct {
	id    int64
	admin bool
	err   error
}

// App is the root model for the TUI
type App struct {
	ctx     context.Context
	session *session.Store
	client  *client.Client

	screen     Screen
	back       Screen // where the form, confirm and detail screens return to
	width      int
	height     int
	err        error
	notice     string
	loading    bool
	spinning   bool
	lastUpdate time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	auth    *authform.Form
	pets    *petlist.List
	admin   *petlist.List
	detail  *petdetail.Detail
	form    *petform.Form
	confirm *confirmDialog
}

// New creates the TUI. The start screen follows the session: login when
// logged out, the admin list for administrators, otherwise the user's pets.
func New(ctx context.Context, sess *session.Store, c *client.Client) *App {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.Primary)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.Surface)
	h.Styles.Ellipsis = lipgloss.NewStyle().Foreground(styles.Muted)

	a := &App{
		ctx:     ctx,
		session: sess,
		client:  c,
		keys:    defaultKeys(),
		help:    h,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary))),
		pets:    petlist.New(false, 0, 0),
		admin:   petlist.New(true, 0, 0),
		back:    ScreenPets,
	}

	switch {
	case !sess.IsAuthenticated():
		a.screen = ScreenLogin
		a.auth = authform.New(authform.ModeLogin, "")
	case sess.IsAdmin():
		a.screen = ScreenAdmin
	default:
		a.screen = ScreenPets
	}
	return a
}

// Screen returns the active screen.
func (a *App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	switch a.screen {
	case ScreenAdmin:
		return a.loadPets(true)
	case ScreenPets:
		return a.loadPets(false)
	default:
		return a.auth.Init()
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		if a.form != nil {
			_, cmd := a.form.Update(tea.WindowSizeMsg{Width: a.frameWidth() - 1, Height: msg.Height})
			return a, cmd
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenLogin, ScreenRegister:
			return a.updateAuth(msg)
		case ScreenPets:
			return a.updatePets(msg)
		case ScreenAdmin:
			return a.updateAdmin(msg)
		case ScreenDetail:
			return a.updateDetail(msg)
		case ScreenForm:
			return a.updateForm(msg)
		case ScreenConfirm:
			if a.confirm != nil {
				return a, a.confirm.Update(msg)
			}
		}
		return a, nil

	case authform.SubmittedMsg:
		a.err = nil
		if msg.Mode == authform.ModeRegister {
			return a, tea.Batch(a.startLoading(), a.register(msg.Registration))
		}
		return a, tea.Batch(a.startLoading(), a.login(msg.Login))

	case authform.CancelledMsg:
		if msg.Mode == authform.ModeRegister {
			return a, a.showLogin("", "")
		}
		return a, tea.Quit

	case loginResultMsg:
		a.stopLoading()
		if msg.err != nil {
			a.auth = authform.New(authform.ModeLogin, msg.req.UserName)
			a.auth.SetError(loginError(msg.err))
			return a, a.auth.Init()
		}
		if err := a.session.Login(msg.resp.Token, msg.resp.UserName); err != nil {
			debuglog.Error("persist session", err)
			a.notice = fmt.Sprintf("Logged in, but the session could not be saved: %v", err)
		} else {
			a.notice = fmt.Sprintf("Welcome, %s.", msg.resp.UserName)
		}
		a.auth = nil
		return a, a.goHome()

	case registerResultMsg:
		a.stopLoading()
		if msg.err != nil {
			a.auth = authform.New(authform.ModeRegister, msg.userName)
			a.auth.SetError(msg.err.Error())
			return a, a.auth.Init()
		}
		return a, a.showLogin(msg.userName, fmt.Sprintf("Registered %s. Log in to continue.", msg.userName))

	case petsLoadedMsg:
		a.stopLoading()
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.listFor(msg.admin).SetPets(msg.pets)
		a.lastUpdate = time.Now()
		return a, nil

	case petLoadedMsg:
		a.stopLoading()
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.showPet(msg.pet)
		a.lastUpdate = time.Now()
		return a, nil

	case actionDoneMsg:
		a.stopLoading()
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.showPet(msg.pet)
		a.notice = actionNotice(msg.action, msg.pet.Name)
		a.lastUpdate = time.Now()
		return a, nil

	case petform.SubmittedMsg:
		a.form = nil
		a.screen = a.back
		return a, tea.Batch(a.startLoading(), a.save(msg))

	case petform.CancelledMsg:
		a.form = nil
		a.screen = a.back
		return a, nil

	case petSavedMsg:
		a.stopLoading()
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		if msg.created {
			a.notice = fmt.Sprintf("Created %s.", msg.pet.Name)
		} else {
			a.notice = fmt.Sprintf("Saved %s.", msg.pet.Name)
		}
		if a.detail != nil && a.detail.Pet() != nil && a.detail.Pet().ID == msg.pet.ID {
			a.detail.SetPet(msg.pet)
		}
		a.listFor(msg.admin).Select(msg.pet.ID)
		return a, a.loadPets(msg.admin)

	case confirmResultMsg:
		a.confirm = nil
		a.screen = a.back
		if !msg.confirmed {
			return a, nil
		}
		return a, tea.Batch(a.startLoading(), a.remove(msg.pet.ID, msg.admin))

	case petDeletedMsg:
		a.stopLoading()
		if msg.err != nil {
			return a, a.fail(msg.err)
		}
		a.notice = fmt.Sprintf("Deleted pet %d.", msg.id)
		if a.screen == ScreenDetail {
			a.detail = nil
			a.screen = ScreenPets
		}
		return a, a.loadPets(msg.admin)
	}

	// huh forms rely on their own internal messages
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		if a.auth != nil {
			_, cmd := a.auth.Update(msg)
			return a, cmd
		}
	case ScreenForm:
		if a.form != nil {
			_, cmd := a.form.Update(msg)
			return a, cmd
		}
	case ScreenConfirm:
		if a.confirm != nil {
			return a, a.confirm.Update(msg)
		}
	}
	return a, nil
}

func (a *App) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.auth == nil {
		return a, a.showLogin("", "")
	}
	if a.screen == ScreenLogin && key.Matches(msg, a.keys.Register) {
		a.err = nil
		a.auth = authform.New(authform.ModeRegister, "")
		a.screen = ScreenRegister
		return a, a.auth.Init()
	}
	_, cmd := a.auth.Update(msg)
	return a, cmd
}

func (a *App) updatePets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Logout):
		return a, a.logout()
	case key.Matches(msg, a.keys.Refresh):
		return a, a.loadPets(false)
	case key.Matches(msg, a.keys.New):
		return a, a.openForm(nil, false, ScreenPets)
	case key.Matches(msg, a.keys.Admin):
		if !a.session.IsAdmin() {
			return a, nil
		}
		a.clearStatus()
		a.screen = ScreenAdmin
		return a, a.loadPets(true)
	}

	pet, ok := a.pets.Selected()
	switch {
	case !ok:
	case key.Matches(msg, a.keys.Open):
		a.clearStatus()
		a.detail = petdetail.New(&pet, a.panelWidth())
		a.screen = ScreenDetail
		return a, a.loadPet(pet.ID)
	case key.Matches(msg, a.keys.Edit):
		return a, a.openForm(&pet, false, ScreenPets)
	case key.Matches(msg, a.keys.Delete):
		return a, a.askDelete(pet, false, ScreenPets)
	case key.Matches(msg, a.keys.Feed):
		return a, a.perform(pet.ID, client.ActionFeed)
	case key.Matches(msg, a.keys.Play):
		return a, a.perform(pet.ID, client.ActionPlay)
	case key.Matches(msg, a.keys.Sleep):
		return a, a.perform(pet.ID, client.ActionSleep)
	}

	return a, a.pets.Update(msg)
}

func (a *App) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Logout):
		return a, a.logout()
	case key.Matches(msg, a.keys.Refresh):
		return a, a.loadPets(true)
	case key.Matches(msg, a.keys.Mine), key.Matches(msg, a.keys.Back):
		a.clearStatus()
		a.screen = ScreenPets
		return a, a.loadPets(false)
	}

	pet, ok := a.admin.Selected()
	switch {
	case !ok:
	case key.Matches(msg, a.keys.Edit), key.Matches(msg, a.keys.Open):
		return a, a.openForm(&pet, true, ScreenAdmin)
	case key.Matches(msg, a.keys.Delete):
		return a, a.askDelete(pet, true, ScreenAdmin)
	}

	return a, a.admin.Update(msg)
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.detail == nil || a.detail.Pet() == nil {
		a.screen = ScreenPets
		return a, nil
	}
	pet := *a.detail.Pet()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Back):
		a.clearStatus()
		a.screen = ScreenPets
		a.pets.Select(pet.ID)
		return a, a.loadPets(false)
	case key.Matches(msg, a.keys.Refresh):
		return a, a.loadPet(pet.ID)
	case key.Matches(msg, a.keys.Edit):
		return a, a.openForm(&pet, false, ScreenDetail)
	case key.Matches(msg, a.keys.Delete):
		return a, a.askDelete(pet, false, ScreenDetail)
	case key.Matches(msg, a.keys.Feed):
		return a, a.perform(pet.ID, client.ActionFeed)
	case key.Matches(msg, a.keys.Play):
		return a, a.perform(pet.ID, client.ActionPlay)
	case key.Matches(msg, a.keys.Sleep):
		return a, a.perform(pet.ID, client.ActionSleep)
	}
	return a, nil
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		a.screen = a.back
		return a, nil
	}
	_, cmd := a.form.Update(msg)
	return a, cmd
}

func (a *App) listFor(admin bool) *petlist.List {
	if admin {
		return a.admin
	}
	return a.pets
}

// showPet refreshes pet wherever it is displayed.
func (a *App) showPet(pet *client.Pet) {
	if a.detail != nil && a.detail.Pet() != nil && a.detail.Pet().ID == pet.ID {
		a.detail.SetPet(pet)
	}
	pets := a.pets.Pets()
	for i := range pets {
		if pets[i].ID == pet.ID {
			updated := append([]client.Pet(nil), pets...)
			updated[i] = *pet
			a.pets.SetPets(updated)
			break
		}
	}
}

func (a *App) openForm(pet *client.Pet, admin bool, back Screen) tea.Cmd {
	a.clearStatus()
	a.back = back
	a.form = petform.New(pet, admin)
	a.form.SetWidth(a.frameWidth() - 1)
	a.screen = ScreenForm
	return a.form.Init()
}

func (a *App) askDelete(pet client.Pet, admin bool, back Screen) tea.Cmd {
	a.clearStatus()
	a.back = back
	a.confirm = newConfirm(pet, admin)
	a.screen = ScreenConfirm
	return a.confirm.Init()
}

// goHome shows the start screen for the logged-in user.
func (a *App) goHome() tea.Cmd {
	if a.session.IsAdmin() {
		a.screen = ScreenAdmin
		return a.loadPets(true)
	}
	a.screen = ScreenPets
	return a.loadPets(false)
}

// showLogin resets to the login form with an optional notice.
func (a *App) showLogin(userName, notice string) tea.Cmd {
	a.screen = ScreenLogin
	a.auth = authform.New(authform.ModeLogin, userName)
	a.auth.SetNotice(notice)
	a.notice = ""
	a.err = nil
	a.detail = nil
	a.form = nil
	a.confirm = nil
	a.pets = petlist.New(false, a.panelWidth(), a.contentHeight())
	a.admin = petlist.New(true, a.panelWidth(), a.contentHeight())
	a.lastUpdate = time.Time{}
	return a.auth.Init()
}

func (a *App) logout() tea.Cmd {
	if err := a.session.Logout(); err != nil {
		debuglog.Error("logout", err)
	}
	return a.showLogin("", "Logged out.")
}

// fail records err. A rejected or missing token ends the session.
func (a *App) fail(err error) tea.Cmd {
	debuglog.Error("tui request", err)
	if client.IsAuthError(err) {
		name := a.session.UserName()
		if logoutErr := a.session.Logout(); logoutErr != nil {
			debuglog.Error("logout after rejected token", logoutErr)
		}
		return a.showLogin(name, "Your session has ended. Please log in again.")
	}
	a.err = err
	return nil
}

func (a *App) clearStatus() {
	a.err = nil
	a.notice = ""
}

func (a *App) startLoading() tea.Cmd {
	a.loading = true
	if a.spinning {
		return nil
	}
	a.spinning = true
	return a.spinner.Tick
}

func (a *App) stopLoading() {
	a.loading = false
}

func loginError(err error) string {
	if errors.Is(err, client.ErrUnauthorized) {
		return "Invalid user name or password."
	}
	return err.Error()
}

func actionNotice(action client.Action, name string) string {
	switch action {
	case client.ActionFeed:
		return fmt.Sprintf("Fed %s.", name)
	case client.ActionPlay:
		return fmt.Sprintf("Played with %s.", name)
	case client.ActionSleep:
		return fmt.Sprintf("%s had a nap.", name)
	default:
		return fmt.Sprintf("%s: %s done.", name, action)
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin, ScreenRegister:
		content = a.viewAuth()
	case ScreenPets:
		content = styles.ActivePanel.Width(a.panelWidth()).Render(a.pets.View())
	case ScreenAdmin:
		content = styles.ActivePanel.BorderForeground(styles.Info).Width(a.panelWidth()).Render(a.admin.View())
	case ScreenDetail:
		content = a.viewDetail()
	case ScreenForm:
		if a.form != nil {
			content = a.form.View()
		}
	case ScreenConfirm:
		if a.confirm != nil {
			content = styles.Panel.Render(a.confirm.View())
		}
	}

	if status := a.statusLine(); status != "" {
		content = status + "\n" + content
	}
	return a.wrapWithFrame(content)
}

func (a *App) viewAuth() string {
	banner := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.TrimRight(styles.Banner(), "\n"))
	if a.auth == nil {
		return banner
	}
	return banner + "\n\n" + a.auth.View()
}

// viewDetail renders the pet with an actions pane on wide terminals.
func (a *App) viewDetail() string {
	if a.detail == nil {
		return ""
	}
	if a.width < minTerminalWidth+20 {
		return styles.ActivePanel.Width(a.panelWidth()).Render(a.detail.View())
	}

	actionsWidth := 24
	leftWidth := a.panelWidth() - actionsWidth - panelPadding
	a.detail.SetWidth(leftWidth - panelPadding)

	actions := styles.Title.Render("Actions") + "\n\n" +
		icons.Feed.String() + " Feed\n" +
		icons.Play.String() + " Play\n" +
		icons.Sleep.String() + " Sleep\n" +
		icons.Edit.String() + " Edit\n" +
		icons.Delete.String() + " Delete\n" +
		icons.Back.String() + " Back to list"

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ActivePanel.Width(leftWidth).Render(a.detail.View()),
		styles.Panel.Width(actionsWidth).Render(actions),
	)
}

func (a *App) statusLine() string {
	switch {
	case a.loading:
		return a.spinner.View() + " Working..."
	case a.err != nil:
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	case a.notice != "":
		return styles.Notice.Render(a.notice)
	}
	return ""
}

func (a *App) resize() {
	a.pets.SetSize(a.panelWidth()-panelPadding, a.contentHeight())
	a.admin.SetSize(a.panelWidth()-panelPadding, a.contentHeight())
	if a.detail != nil {
		a.detail.SetWidth(a.panelWidth() - panelPadding)
	}
	if a.form != nil {
		a.form.SetWidth(a.frameWidth() - 1)
	}
}

// frameWidth is one less than the terminal so the frame never wraps, but
// at least minTerminalWidth.
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// panelWidth is the lipgloss width of a bordered panel spanning the frame.
func (a *App) panelWidth() int {
	return a.frameWidth() - 2
}

// contentHeight is the height left after the header, footer, status line
// and panel chrome.
func (a *App) contentHeight() int {
	return max(a.height-9, 5)
}

// renderHeader creates the header bar with app branding and the user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	userStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.Paw.String(), titleStyle.Render("Pet Care"))

	right := ""
	if snap := a.session.Snapshot(); snap.Authenticated() {
		right = " " + userStyle.Render(icons.User.String()+" "+snap.UserName) + " " + widgets.RoleBadge(snap.IsAdmin) + " "
	}

	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right))
	return borderStyle.Render("╭─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╮")
}

// renderFooter creates the footer with key hints and the last refresh time
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	right := ""
	if !a.lastUpdate.IsZero() && (a.screen == ScreenPets || a.screen == ScreenAdmin || a.screen == ScreenDetail) {
		right = " " + statusStyle.Render("Updated "+formatTimeSince(a.lastUpdate)) + " "
	}

	a.help.Width = max(0, width-6-lipgloss.Width(right))
	left := " " + a.help.ShortHelpView(a.keys.hints(a.screen, a.session.IsAdmin())) + " "

	fill := max(0, width-4-lipgloss.Width(left)-lipgloss.Width(right))
	return borderStyle.Render("╰─") + left + borderStyle.Render(strings.Repeat("─", fill)) + right + borderStyle.Render("─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

func (a *App) login(req client.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.Login(a.ctx, req)
		return loginResultMsg{resp: resp, req: req, err: err}
	}
}

func (a *App) register(reg client.Registration) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.Register(a.ctx, reg)
		return registerResultMsg{userName: reg.UserName, err: err}
	}
}

func (a *App) loadPets(admin bool) tea.Cmd {
	load := func() tea.Msg {
		var (
			pets []client.Pet
			err  error
		)
		if admin {
			pets, err = a.client.AdminListPets(a.ctx)
		} else {
			pets, err = a.client.ListPets(a.ctx)
		}
		return petsLoadedMsg{pets: pets, admin: admin, err: err}
	}
	return tea.Batch(a.startLoading(), load)
}

func (a *App) loadPet(id int64) tea.Cmd {
	load := func() tea.Msg {
		pet, err := a.client.GetPet(a.ctx, id)
		return petLoadedMsg{pet: pet, err: err}
	}
	return tea.Batch(a.startLoading(), load)
}

// perform runs action and re-reads the pet so the view shows its new stats.
func (a *App) perform(id int64, action client.Action) tea.Cmd {
	a.clearStatus()
	run := func() tea.Msg {
		if err := a.client.Perform(a.ctx, id, action); err != nil {
			return actionDoneMsg{action: action, err: err}
		}
		pet, err := a.client.GetPet(a.ctx, id)
		return actionDoneMsg{action: action, pet: pet, err: err}
	}
	return tea.Batch(a.startLoading(), run)
}

func (a *App) save(msg petform.SubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		var (
			pet *client.Pet
			err error
		)
		switch {
		case msg.ID == 0:
			pet, err = a.client.CreatePet(a.ctx, msg.Input)
		case msg.Admin:
			pet, err = a.client.AdminUpdatePet(a.ctx, msg.ID, msg.Input)
		default:
			pet, err = a.client.UpdatePet(a.ctx, msg.ID, msg.Input)
		}
		return petSavedMsg{pet: pet, created: msg.ID == 0, admin: msg.Admin, err: err}
	}
}

func (a *App) remove(id int64, admin bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if admin {
			err = a.client.AdminDeletePet(a.ctx, id)
		} else {
			err = a.client.DeletePet(a.ctx, id)
		}
		return petDeletedMsg{id: id, admin: admin, err: err}
	}
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, sess *session.Store, c *client.Client) error {
	p := tea.NewProgram(
		New(ctx, sess, c),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
