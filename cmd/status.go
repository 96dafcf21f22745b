// ABOUTME: Status command for the petcare CLI
// ABOUTME: Shows the session and a wellbeing summary of the user's pets

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/markalston/petcare-cli/internal/care"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how your pets are doing",
	Long:  `Display the current session and a summary of your pets: how many are hungry, average energy and fun, and how many need care.`,
	Args:  cobra.NoArgs,
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
		return runStatus(ctx, w, env)
	}),
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusReport is what the status command prints.
type statusReport struct {
	UserName string       `json:"user_name"`
	Admin    bool         `json:"admin"`
	Backend  string       `json:"backend"`
	Pets     care.Summary `json:"pets"`
}

// runStatus executes the status check and returns exit code
func runStatus(ctx context.Context, w io.Writer, env *environment) int {
	if !requireLogin(w, env) {
		return exitError
	}

	pets, err := env.client.ListPets(ctx)
	if err != nil {
		return reportError(w, env, err)
	}

	report := statusReport{
		UserName: env.session.UserName(),
		Admin:    env.session.IsAdmin(),
		Backend:  env.client.BaseURL(),
		Pets:     care.Summarize(pets),
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatStatusJSON(report))
	} else {
		fmt.Fprintln(w, formatStatusHuman(report))
	}
	return exitOK
}

// formatStatusHuman formats the report for human readability
func formatStatusHuman(r statusReport) string {
	role := "user"
	if r.Admin {
		role = "admin"
	}
	header := fmt.Sprintf("Logged in as %s (%s) at %s\n\n", r.UserName, role, r.Backend)

	if r.Pets.Total == 0 {
		return header + "No pets yet. Create one with 'petcare pets create'."
	}

	s := r.Pets
	return header + fmt.Sprintf(`Pets:         %d
Hungry:       %d
Needing care: %d

Energy:       %.0f avg, %d lowest [%s]
Fun:          %.0f avg, %d lowest [%s]`,
		s.Total,
		s.Hungry,
		s.NeedingCare,
		s.AvgEnergy, s.LowestEnergy, care.Level(s.LowestEnergy),
		s.AvgFun, s.LowestFun, care.Level(s.LowestFun))
}

// formatStatusJSON formats the report as JSON
func formatStatusJSON(r statusReport) string {
	data, _ := json.MarshalIndent(r, "", "  ")
	return string(data)
}
