// ABOUTME: Login, logout and whoami commands for the petcare CLI
// ABOUTME: Exchange credentials for a token and report the current session

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/debuglog"
	"github.com/spf13/cobra"
)

var (
	loginUser          string
	loginPasswordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the session",
	Long: `Log in to the pet-care service. Without --user an interactive form is shown.

Use --password-stdin to pipe the password in scripts:
  echo "$PASSWORD" | petcare login --user alice --password-stdin`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
			creds := client.LoginRequest{UserName: loginUser}
			if loginPasswordStdin {
				pw, err := readSecret(cmd.InOrStdin())
				if err != nil {
					fmt.Fprintf(w, "Error: %v\n", err)
					return exitError
				}
				creds.Password = pw
			}
			if creds.UserName == "" || creds.Password == "" {
				if err := loginForm(&creds).Run(); err != nil {
					return formError(w, err)
				}
			}
			return runLogin(ctx, w, env, creds)
		})(cmd, args)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the current session",
	Args:  cobra.NoArgs,
	Run: withEnv(func(_ context.Context, w io.Writer, env *environment, _ []string) int {
		return runLogout(w, env)
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and token details",
	Args:  cobra.NoArgs,
	Run: withEnv(func(_ context.Context, w io.Writer, env *environment, _ []string) int {
		return runWhoami(w, env)
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "User name")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")
}

// readSecret reads the first line of r.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", fmt.Errorf("no password on stdin")
	}
	return pw, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func loginForm(creds *client.LoginRequest) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("User name").Value(&creds.UserName).Validate(required("user name")),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&creds.Password).Validate(required("password")),
		),
	)
}

// formError maps an aborted or failed form to an exit code.
func formError(w io.Writer, err error) int {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(w, "Aborted.")
		return exitError
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}

// runLogin authenticates against the API and stores the session
func runLogin(ctx context.Context, w io.Writer, env *environment, creds client.LoginRequest) int {
	resp, err := env.client.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(w, "Error: invalid user name or password")
			return exitError
		}
		fmt.Fprintf(w, "Error: login failed: %v\n", err)
		return exitError
	}

	saveErr := env.session.Login(resp.Token, resp.UserName)

	role := "user"
	if env.session.IsAdmin() {
		role = "admin"
	}
	fmt.Fprintf(w, "Logged in as %s (%s)\n", env.session.UserName(), role)

	if saveErr != nil {
		debuglog.Error("persist session", saveErr)
		fmt.Fprintf(w, "Warning: session could not be saved and will not survive this command: %v\n", saveErr)
		return exitFailure
	}
	return exitOK
}

// runLogout clears the session
func runLogout(w io.Writer, env *environment) int {
	wasLoggedIn := env.session.IsAuthenticated()
	if err := env.session.Logout(); err != nil {
		fmt.Fprintf(w, "Error: failed to clear saved session: %v\n", err)
		return exitError
	}
	if wasLoggedIn {
		fmt.Fprintln(w, "Logged out.")
	} else {
		fmt.Fprintln(w, "Not logged in.")
	}
	return exitOK
}

// whoami is the report printed by the whoami command.
type whoami struct {
	UserName    string     `json:"user_name"`
	Admin       bool       `json:"admin"`
	Subject     string     `json:"subject,omitempty"`
	Authorities []string   `json:"authorities"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ExpiresIn   string     `json:"expires_in,omitempty"`
	APIURL      string     `json:"api_url"`
}

// runWhoami prints the current session
func runWhoami(w io.Writer, env *environment) int {
	if !requireLogin(w, env) {
		return exitError
	}

	snap := env.session.Snapshot()
	report := whoami{
		UserName:    snap.UserName,
		Admin:       snap.IsAdmin,
		Authorities: []string{},
		APIURL:      env.client.BaseURL(),
	}

	insp := env.session.Inspector()
	if claims, err := insp.Decode(snap.Token); err == nil {
		report.Subject = claims.Subject
		if claims.Authorities != nil {
			report.Authorities = claims.Authorities
		}
		if claims.ExpiresAt != nil {
			expiresAt := claims.ExpiresAt.Time
			report.ExpiresAt = &expiresAt
			report.ExpiresIn = insp.ExpiresIn(snap.Token).Round(time.Second).String()
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(report))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(report))
	}
	return exitOK
}

// formatWhoamiHuman formats the session for human readability
func formatWhoamiHuman(r whoami) string {
	expires := "never"
	if r.ExpiresAt != nil {
		expires = fmt.Sprintf("%s (in %s)", r.ExpiresAt.Format(time.RFC3339), r.ExpiresIn)
	}
	authorities := strings.Join(r.Authorities, ", ")
	if authorities == "" {
		authorities = "none"
	}
	return fmt.Sprintf(`User:        %s
Admin:       %t
Subject:     %s
Authorities: %s
Expires:     %s
Backend:     %s`, r.UserName, r.Admin, r.Subject, authorities, expires, r.APIURL)
}

// formatWhoamiJSON formats the session as JSON
func formatWhoamiJSON(r whoami) string {
	data, _ := json.MarshalIndent(r, "", "  ")
	return string(data)
}
