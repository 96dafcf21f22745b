// ABOUTME: Root command for the petcare CLI
// ABOUTME: Handles global flags, configuration and the per-command environment

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/petcare-cli/internal/client"
	"github.com/markalston/petcare-cli/internal/config"
	"github.com/markalston/petcare-cli/internal/debuglog"
	"github.com/markalston/petcare-cli/internal/session"
	"github.com/markalston/petcare-cli/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // a check or part of a batch failed
	exitError   = 2 // connectivity, not logged in, invalid input
)

var (
	cfgFile    string
	jsonOutput bool
	v          = viper.New()
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "petcare",
	Short: "Terminal client for the pet-care service",
	Long: `petcare is a command-line and terminal UI client for the pet-care API.

Log in once and the session is kept between runs until the token expires.

Environment Variables:
  PETCARE_API_URL          Backend API URL (default: http://localhost:8080)
  PETCARE_SESSION_BACKEND  Where the session is kept: file, sqlite, redis, memory
  PETCARE_LOG_LEVEL        Debug log level (debug, info, warn, error)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/petcare/config.yaml)")
	flags.String("api-url", "", "Backend API URL (overrides PETCARE_API_URL)")
	flags.Duration("timeout", 0, "Per-request timeout (e.g. 10s)")
	flags.BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	flags.String("session-backend", "", "Session storage: file, sqlite, redis or memory")
	flags.String("log-level", "", "Debug log level")

	bind := map[string]string{
		"api_url":         "api-url",
		"timeout":         "timeout",
		"json":            "json",
		"session.backend": "session-backend",
		"log.level":       "log-level",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// IsJSONOutput returns whether JSON output is requested by flag, env or
// config file
func IsJSONOutput() bool {
	return jsonOutput || v.GetBool("json")
}

// environment is everything a command needs to talk to the API on behalf
// of the current session.
type environment struct {
	cfg     *config.Config
	store   storage.Store
	session *session.Store
	client  *client.Client
}

// newEnvironment builds the environment explicitly and restores any
// persisted session.
func newEnvironment(cfg *config.Config, store storage.Store) *environment {
	sess := session.New(store, nil)
	sess.Restore()

	return &environment{
		cfg:     cfg,
		store:   store,
		session: sess,
		client: client.New(cfg.APIURL,
			client.WithTimeout(cfg.Timeout),
			client.WithTokens(sess.Token),
		),
	}
}

// loadEnvironment resolves configuration, starts the debug log and opens
// the session backend.
func loadEnvironment() (*environment, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	if err := debuglog.Init(debuglog.Options{
		Dir:        config.DefaultConfigDir(),
		FileName:   cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	store, err := storage.Open(cfg.Session)
	if err != nil {
		debuglog.Close()
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}
	debuglog.Debug("session backend %s, api %s", cfg.Session.Backend, cfg.APIURL)

	return newEnvironment(cfg, store), nil
}

// Close releases the session backend and the debug log.
func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		debuglog.Error("close session storage", err)
	}
	debuglog.Close()
}

// withEnv adapts a run function to cobra. It handles signals, environment
// setup and the exit code.
func withEnv(run func(ctx context.Context, w io.Writer, env *environment, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		env, err := loadEnvironment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}

		exitCode := run(ctx, cmd.OutOrStdout(), env, args)
		env.Close()
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	}
}

// requireLogin reports whether the session is authenticated, printing
// guidance when it is not.
func requireLogin(w io.Writer, env *environment) bool {
	if env.session.IsAuthenticated() {
		return true
	}
	fmt.Fprintln(w, "Error: not logged in. Run 'petcare login' first.")
	return false
}

// reportError prints err and returns the exit code for it. A rejected
// token ends the session.
func reportError(w io.Writer, env *environment, err error) int {
	if errors.Is(err, client.ErrUnauthorized) {
		if logoutErr := env.session.Logout(); logoutErr != nil {
			debuglog.Error("logout after rejected token", logoutErr)
		}
		fmt.Fprintln(w, "Error: session rejected by the server. Run 'petcare login' again.")
		return exitError
	}
	if errors.Is(err, client.ErrNotAuthenticated) {
		fmt.Fprintln(w, "Error: not logged in. Run 'petcare login' first.")
		return exitError
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}
