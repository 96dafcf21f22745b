// ABOUTME: Check command for the petcare CLI
// ABOUTME: Validates pet wellbeing thresholds for scripts and cron jobs

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/markalston/petcare-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	minEnergy   int
	minFun      int
	allowHungry bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check pet wellbeing thresholds",
	Long: `Check every pet against wellbeing thresholds and exit non-zero if any fall short.

Exit codes:
  0 - All checks passed
  1 - One or more pets need care
  2 - Error (connectivity, not logged in, invalid input)`,
	Args: cobra.NoArgs,
	Run: withEnv(func(ctx context.Context, w io.Writer, env *environment, _ []string) int {
		return runCheck(ctx, w, env)
	}),
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&minEnergy, "min-energy", 25, "Minimum energy for every pet")
	checkCmd.Flags().IntVar(&minFun, "min-fun", 25, "Minimum fun for every pet")
	checkCmd.Flags().BoolVar(&allowHungry, "allow-hungry", false, "Do not fail on hungry pets")
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	pet       string
	name      string
	value     int
	threshold int
	passed    bool
}

// runCheck executes the threshold checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, env *environment) int {
	if err := validateThresholds(minEnergy, minFun); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	if !requireLogin(w, env) {
		return exitError
	}

	pets, err := env.client.ListPets(ctx)
	if err != nil {
		return reportError(w, env, err)
	}
	if len(pets) == 0 {
		fmt.Fprintln(w, "Error: no pets to check.")
		return exitError
	}

	results := performChecks(pets, minEnergy, minFun, allowHungry)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return exitFailure
	}
	return exitOK
}

// validateThresholds ensures threshold values are valid
func validateThresholds(energy, fun int) error {
	if energy < client.MinStat || energy > client.MaxStat {
		return fmt.Errorf("--min-energy must be between 0 and 100")
	}
	if fun < client.MinStat || fun > client.MaxStat {
		return fmt.Errorf("--min-fun must be between 0 and 100")
	}
	return nil
}

// performChecks runs all threshold checks against every pet
func performChecks(pets []client.Pet, energy, fun int, hungryOK bool) []checkResult {
	var results []checkResult

	for _, p := range pets {
		label := fmt.Sprintf("%s (#%d)", p.Name, p.ID)

		results = append(results,
			checkResult{pet: label, name: "energy", value: p.Energy, threshold: energy, passed: p.Energy >= energy},
			checkResult{pet: label, name: "fun", value: p.Fun, threshold: fun, passed: p.Fun >= fun},
		)

		if !hungryOK {
			fed := 1
			if p.Hungry {
				fed = 0
			}
			results = append(results, checkResult{pet: label, name: "fed", value: fed, threshold: 1, passed: !p.Hungry})
		}
	}

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		if r.name == "fed" {
			state := "fed"
			if !r.passed {
				state = "hungry"
			}
			output += fmt.Sprintf("%s %s: %s\n", symbol, r.pet, state)
			continue
		}
		output += fmt.Sprintf("%s %s %s: %d (minimum: %d)\n", symbol, r.pet, r.name, r.value, r.threshold)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) below threshold", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) within thresholds", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"pet":       r.pet,
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"passed":    r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
