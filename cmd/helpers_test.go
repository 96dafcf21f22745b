// ABOUTME: Shared fixtures for command tests
// ABOUTME: Runs commands against the in-memory fake API with a memory session

package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/config"
	"github.com/markalston/petcare-cli/internal/fakeapi"
	"github.com/markalston/petcare-cli/internal/storage"
)

// newTestEnv returns an environment talking to a fake API that knows
// "alice" (user) and "root" (admin), both with password "pw".
func newTestEnv(t *testing.T) (*environment, *fakeapi.Server) {
	t.Helper()

	api := fakeapi.New()
	api.AddUser("alice", "pw", false)
	api.AddUser("root", "pw", true)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		APIURL:  srv.URL,
		Timeout: 5 * time.Second,
		Session: config.SessionConfig{Backend: config.BackendMemory},
	}
	return newEnvironment(cfg, storage.NewMemoryStore()), api
}

// loggedIn logs env in as name and fails the test on error.
func loggedIn(t *testing.T, env *environment, name string) {
	t.Helper()
	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, env, client.LoginRequest{UserName: name, Password: "pw"}); code != exitOK {
		t.Fatalf("login as %s failed with %d: %s", name, code, buf.String())
	}
}
