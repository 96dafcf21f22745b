// ABOUTME: Integration tests for TUI app
// ABOUTME: Drives the root model against the fake API and checks state transitions

package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/fakeapi"
	"github.com/markalston/petcare-cli/internal/session"
	"github.com/markalston/petcare-cli/internal/storage"
	"github.com/markalston/petcare-cli/internal/tui/authform"
	"github.com/markalston/petcare-cli/internal/tui/petform"
)

type harness struct {
	api  *fakeapi.Server
	sess *session.Store
	app  *App
	rex  client.Pet
}

// newHarness starts a fake API with "alice" (user) and "root" (admin),
// both with password "pw". alice owns a hungry dog named Rex. user, when
// set, is logged in before the app is created.
func newHarness(t *testing.T, user string) *harness {
	t.Helper()

	api := fakeapi.New()
	api.AddUser("alice", "pw", false)
	api.AddUser("root", "pw", true)
	rex := client.NewPetInput("Rex", client.Dog, client.Brown)
	rex.Hungry = true
	rex.Energy = 40
	rex.Fun = 30

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	sess := session.New(storage.NewMemoryStore(), nil)
	if user != "" {
		tok, err := api.IssueToken(user, time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}
		if err := sess.Login(tok, user); err != nil {
			t.Fatalf("session login: %v", err)
		}
	}

	c := client.New(srv.URL, client.WithTokens(sess.Token), client.WithTimeout(5*time.Second))
	app := New(context.Background(), sess, c)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return &harness{api: api, sess: sess, app: app, rex: api.AddPet("alice", rex)}
}

// collect runs cmd, expanding batches, and returns the messages produced.
// Spinner ticks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func appMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case loginResultMsg, registerResultMsg, petsLoadedMsg, petLoadedMsg,
		actionDoneMsg, petSavedMsg, petDeletedMsg, confirmResultMsg, tea.QuitMsg:
		return true
	}
	return false
}

// drive feeds msg to the app and keeps feeding back the app's own
// follow-up messages until none remain. It reports whether the app quit.
func drive(t *testing.T, a *App, msg tea.Msg) bool {
	t.Helper()
	pending := []tea.Msg{msg}
	for i := 0; len(pending) > 0; i++ {
		if i > 50 {
			t.Fatal("message loop did not settle")
		}
		m := pending[0]
		pending = pending[1:]
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
		_, cmd := a.Update(m)
		for _, out := range collect(cmd) {
			if appMsg(out) {
				pending = append(pending, out)
			}
		}
	}
	return false
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppStartScreen(t *testing.T) {
	tests := []struct {
		user string
		want Screen
	}{
		{"", ScreenLogin},
		{"alice", ScreenPets},
		{"root", ScreenAdmin},
	}

	for _, tc := range tests {
		t.Run("user="+tc.user, func(t *testing.T) {
			h := newHarness(t, tc.user)
			if h.app.Screen() != tc.want {
				t.Errorf("expected screen %d, got %d", tc.want, h.app.Screen())
			}
		})
	}
}

func TestAppInitLoadsPets(t *testing.T) {
	h := newHarness(t, "alice")
	for _, msg := range collect(h.app.Init()) {
		drive(t, h.app, msg)
	}

	pets := h.app.pets.Pets()
	if len(pets) != 1 || pets[0].Name != "Rex" {
		t.Fatalf("expected Rex in the list, got %+v", pets)
	}
	if h.app.loading {
		t.Error("expected loading to finish")
	}
}

func TestAppLogin(t *testing.T) {
	h := newHarness(t, "")

	drive(t, h.app, authform.SubmittedMsg{Mode: authform.ModeLogin, Login: client.LoginRequest{UserName: "alice", Password: "pw"}})

	if h.app.Screen() != ScreenPets {
		t.Fatalf("expected pets screen after login, got %d", h.app.Screen())
	}
	if !h.sess.IsAuthenticated() || h.sess.UserName() != "alice" {
		t.Errorf("expected alice session, got %+v", h.sess.Snapshot())
	}
	if len(h.app.pets.Pets()) != 1 {
		t.Errorf("expected alice's pet to load, got %d", len(h.app.pets.Pets()))
	}
	if !strings.Contains(h.app.View(), "Welcome, alice.") {
		t.Errorf("expected welcome notice:\n%s", h.app.View())
	}
}

func TestAppAdminLoginStartsOnAdminList(t *testing.T) {
	h := newHarness(t, "")

	drive(t, h.app, authform.SubmittedMsg{Mode: authform.ModeLogin, Login: client.LoginRequest{UserName: "root", Password: "pw"}})

	if h.app.Screen() != ScreenAdmin {
		t.Fatalf("expected admin screen, got %d", h.app.Screen())
	}
	if pets := h.app.admin.Pets(); len(pets) != 1 || pets[0].ID != h.rex.ID {
		t.Errorf("expected admin list to include Rex, got %+v", pets)
	}
	if !strings.Contains(h.app.View(), "ADMIN") {
		t.Error("expected admin badge in header")
	}
}

func TestAppLoginFailure(t *testing.T) {
	h := newHarness(t, "")

	drive(t, h.app, authform.SubmittedMsg{Mode: authform.ModeLogin, Login: client.LoginRequest{UserName: "alice", Password: "wrong"}})

	if h.app.Screen() != ScreenLogin {
		t.Fatalf("expected to stay on login, got %d", h.app.Screen())
	}
	if h.sess.IsAuthenticated() {
		t.Error("session should stay unauthenticated")
	}
	if !strings.Contains(h.app.View(), "Invalid user name or password.") {
		t.Errorf("expected login error:\n%s", h.app.View())
	}
}

func TestAppRegister(t *testing.T) {
	h := newHarness(t, "")

	h.app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if h.app.Screen() != ScreenRegister {
		t.Fatalf("expected register screen, got %d", h.app.Screen())
	}

	drive(t, h.app, authform.SubmittedMsg{
		Mode:         authform.ModeRegister,
		Registration: client.Registration{UserName: "bob", Password: "pw", Email: "bob@example.com"},
	})

	if h.app.Screen() != ScreenLogin {
		t.Fatalf("expected login screen after registering, got %d", h.app.Screen())
	}
	if !strings.Contains(h.app.View(), "Registered bob.") {
		t.Errorf("expected registration notice:\n%s", h.app.View())
	}

	drive(t, h.app, authform.SubmittedMsg{Mode: authform.ModeLogin, Login: client.LoginRequest{UserName: "bob", Password: "pw"}})
	if h.sess.UserName() != "bob" {
		t.Errorf("expected bob to log in, got %q", h.sess.UserName())
	}
}

func TestAppRegisterDuplicate(t *testing.T) {
	h := newHarness(t, "")
	h.app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})

	drive(t, h.app, authform.SubmittedMsg{
		Mode:         authform.ModeRegister,
		Registration: client.Registration{UserName: "alice", Password: "pw", Email: "a@example.com"},
	})

	if h.app.Screen() != ScreenRegister {
		t.Errorf("expected to stay on register, got %d", h.app.Screen())
	}
}

func TestAppRegisterCancel(t *testing.T) {
	h := newHarness(t, "")
	h.app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})

	h.app.Update(authform.CancelledMsg{Mode: authform.ModeRegister})
	if h.app.Screen() != ScreenLogin {
		t.Errorf("expected login screen, got %d", h.app.Screen())
	}

	_, cmd := h.app.Update(authform.CancelledMsg{Mode: authform.ModeLogin})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("cancelling login should quit")
	}
}

func TestAppAdminKeyRequiresAdmin(t *testing.T) {
	h := newHarness(t, "alice")
	drive(t, h.app, keyPress("a"))
	if h.app.Screen() != ScreenPets {
		t.Errorf("non-admin should stay on pets, got %d", h.app.Screen())
	}
	if strings.Contains(h.app.View(), "a admin") {
		t.Error("admin hint should be hidden from users")
	}

	r := newHarness(t, "root")
	drive(t, r.app, keyPress("m"))
	if r.app.Screen() != ScreenPets {
		t.Fatalf("expected own pets, got %d", r.app.Screen())
	}
	drive(t, r.app, keyPress("a"))
	if r.app.Screen() != ScreenAdmin {
		t.Errorf("admin should reach the admin screen, got %d", r.app.Screen())
	}
}

func TestAppFeedFromList(t *testing.T) {
	h := newHarness(t, "alice")
	drive(t, h.app, keyPress("r"))

	drive(t, h.app, keyPress("f"))

	stored, _ := h.api.Pet(h.rex.ID)
	if stored.Hungry {
		t.Error("expected Rex to be fed")
	}
	if pets := h.app.pets.Pets(); pets[0].Hungry {
		t.Error("expected list row to refresh")
	}
	if !strings.Contains(h.app.View(), "Fed Rex.") {
		t.Errorf("expected notice:\n%s", h.app.View())
	}
}

func TestAppDetailActions(t *testing.T) {
	h := newHarness(t, "alice")
	drive(t, h.app, keyPress("r"))

	drive(t, h.app, tea.KeyMsg{Type: tea.KeyEnter})
	if h.app.Screen() != ScreenDetail {
		t.Fatalf("expected detail screen, got %d", h.app.Screen())
	}

	drive(t, h.app, keyPress("p"))
	got := h.app.detail.Pet()
	if got.Fun != 50 || got.Energy != 30 {
		t.Errorf("expected fun 50 energy 30 after play, got %d/%d", got.Fun, got.Energy)
	}

	drive(t, h.app, keyPress("s"))
	if h.app.detail.Pet().Energy != 100 {
		t.Errorf("expected full energy after sleep, got %d", h.app.detail.Pet().Energy)
	}
	if !strings.Contains(h.app.View(), "Rex had a nap.") {
		t.Errorf("expected nap notice:\n%s", h.app.View())
	}

	drive(t, h.app, tea.KeyMsg{Type: tea.KeyEsc})
	if h.app.Screen() != ScreenPets {
		t.Errorf("expected back on pets, got %d", h.app.Screen())
	}
}

func TestAppCreatePet(t *testing.T) {
	h := newHarness(t, "alice")

	h.app.Update(keyPress("n"))
	if h.app.Screen() != ScreenForm || h.app.form == nil || h.app.form.Editing() {
		t.Fatalf("expected a new pet form, got screen %d", h.app.Screen())
	}

	drive(t, h.app, petform.SubmittedMsg{Input: client.NewPetInput("Nemo", client.Fish, client.Violet)})

	if h.app.Screen() != ScreenPets {
		t.Errorf("expected to return to pets, got %d", h.app.Screen())
	}
	if len(h.app.pets.Pets()) != 2 {
		t.Errorf("expected 2 pets after create, got %d", len(h.app.pets.Pets()))
	}
	if !strings.Contains(h.app.View(), "Created Nemo.") {
		t.Errorf("expected created notice:\n%s", h.app.View())
	}
}

func TestAppFormCancel(t *testing.T) {
	h := newHarness(t, "alice")
	drive(t, h.app, keyPress("r"))
	h.app.Update(keyPress("e"))
	if h.app.Screen() != ScreenForm || !h.app.form.Editing() {
		t.Fatalf("expected edit form, got %d", h.app.Screen())
	}

	h.app.Update(petform.CancelledMsg{})
	if h.app.Screen() != ScreenPets || h.app.form != nil {
		t.Error("expected cancel to return to pets")
	}
}

func TestAppAdminEdit(t *testing.T) {
	h := newHarness(t, "root")
	drive(t, h.app, keyPress("r"))

	in := h.rex.Input()
	in.Name = "Rexy"
	drive(t, h.app, petform.SubmittedMsg{ID: h.rex.ID, Admin: true, Input: in})

	stored, _ := h.api.Pet(h.rex.ID)
	if stored.Name != "Rexy" {
		t.Errorf("expected admin rename, got %q", stored.Name)
	}
	if h.app.admin.Pets()[0].Name != "Rexy" {
		t.Error("expected admin list to reload")
	}
}

func TestAppDeleteWithConfirm(t *testing.T) {
	h := newHarness(t, "alice")
	drive(t, h.app, keyPress("r"))

	h.app.Update(keyPress("d"))
	if h.app.Screen() != ScreenConfirm {
		t.Fatalf("expected confirm screen, got %d", h.app.Screen())
	}
	if !strings.Contains(h.app.View(), "Delete Rex") {
		t.Errorf("expected confirm prompt:\n%s", h.app.View())
	}

	drive(t, h.app, confirmResultMsg{confirmed: false, pet: h.rex})
	if _, ok := h.api.Pet(h.rex.ID); !ok {
		t.Fatal("declining must keep the pet")
	}

	h.app.Update(keyPress("d"))
	drive(t, h.app, confirmResultMsg{confirmed: true, pet: h.rex})
	if _, ok := h.api.Pet(h.rex.ID); ok {
		t.Error("expected Rex to be deleted")
	}
	if h.app.Screen() != ScreenPets || len(h.app.pets.Pets()) != 0 {
		t.Errorf("expected empty pet list, got screen %d with %d pets", h.app.Screen(), len(h.app.pets.Pets()))
	}
}

func TestAppConfirmEscDeclines(t *testing.T) {
	h := newHarness(t, "alice")
	drive(t, h.app, keyPress("r"))
	h.app.Update(keyPress("d"))

	drive(t, h.app, tea.KeyMsg{Type: tea.KeyEsc})
	if h.app.Screen() != ScreenPets {
		t.Errorf("expected esc to return to pets, got %d", h.app.Screen())
	}
	if _, ok := h.api.Pet(h.rex.ID); !ok {
		t.Error("esc must not delete")
	}
}

func TestAppRejectedTokenLogsOut(t *testing.T) {
	h := newHarness(t, "alice")
	// A token the API cannot verify.
	if err := h.sess.Login("not.a.token", "alice"); err != nil {
		t.Fatal(err)
	}

	drive(t, h.app, keyPress("r"))

	if h.app.Screen() != ScreenLogin {
		t.Fatalf("expected login screen after 401, got %d", h.app.Screen())
	}
	if h.sess.IsAuthenticated() {
		t.Error("expected session to be cleared")
	}
	if !strings.Contains(h.app.View(), "Your session has ended") {
		t.Errorf("expected session ended notice:\n%s", h.app.View())
	}
}

func TestAppLogoutKey(t *testing.T) {
	h := newHarness(t, "alice")
	drive(t, h.app, keyPress("L"))

	if h.app.Screen() != ScreenLogin || h.sess.IsAuthenticated() {
		t.Error("expected logout to return to login")
	}
	if !strings.Contains(h.app.View(), "Logged out.") {
		t.Errorf("expected logout notice:\n%s", h.app.View())
	}
}

func TestAppQuit(t *testing.T) {
	h := newHarness(t, "alice")
	if !drive(t, h.app, keyPress("q")) {
		t.Error("expected q to quit from the pet list")
	}

	l := newHarness(t, "")
	if !drive(t, l.app, tea.KeyMsg{Type: tea.KeyCtrlC}) {
		t.Error("expected ctrl+c to quit from login")
	}
}

func TestActionNotice(t *testing.T) {
	tests := map[client.Action]string{
		client.ActionFeed:  "Fed Rex.",
		client.ActionPlay:  "Played with Rex.",
		client.ActionSleep: "Rex had a nap.",
	}
	for action, want := range tests {
		if got := actionNotice(action, "Rex"); got != want {
			t.Errorf("actionNotice(%s) = %q, want %q", action, got, want)
		}
	}
}

func TestFormatTimeSince(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{time.Second, "just now"},
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
	}
	for _, tc := range tests {
		if got := formatTimeSince(time.Now().Add(-tc.ago)); got != tc.want {
			t.Errorf("formatTimeSince(-%s) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}
