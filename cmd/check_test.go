// ABOUTME: Tests for the check command
// ABOUTME: Verifies threshold checking logic and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/markalston/petcare-cli/internal/client"
)

func TestCheckResult_AllPassed(t *testing.T) {
	results := []checkResult{
		{pet: "Rex (#1)", name: "energy", value: 80, threshold: 25, passed: true},
		{pet: "Rex (#1)", name: "fun", value: 60, threshold: 25, passed: true},
	}

	passed, failed := countResults(results)
	if passed != 2 {
		t.Errorf("expected 2 passed, got %d", passed)
	}
	if failed != 0 {
		t.Errorf("expected 0 failed, got %d", failed)
	}
}

func TestPerformChecks(t *testing.T) {
	pets := []client.Pet{
		{ID: 1, Name: "Rex", Energy: 80, Fun: 10, Hungry: true},
		{ID: 2, Name: "Tom", Energy: 30, Fun: 30},
	}

	results := performChecks(pets, 25, 25, false)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	passed, failed := countResults(results)
	if passed != 4 || failed != 2 {
		t.Errorf("expected 4 passed and 2 failed, got %d and %d", passed, failed)
	}

	results = performChecks(pets, 25, 5, true)
	if _, failed := countResults(results); failed != 0 {
		t.Errorf("expected all checks to pass with relaxed thresholds, got %d failures", failed)
	}
}

func TestFormatCheckHuman(t *testing.T) {
	results := []checkResult{
		{pet: "Rex (#1)", name: "energy", value: 80, threshold: 25, passed: true},
		{pet: "Rex (#1)", name: "fed", value: 0, threshold: 1, passed: false},
	}

	output := formatCheckHuman(results)

	if !bytes.Contains([]byte(output), []byte("✓ Rex (#1) energy: 80 (minimum: 25)")) {
		t.Errorf("expected energy line, got:\n%s", output)
	}
	if !bytes.Contains([]byte(output), []byte("✗ Rex (#1): hungry")) {
		t.Errorf("expected hungry line, got:\n%s", output)
	}
	if !bytes.Contains([]byte(output), []byte("FAILED: 1 check(s)")) {
		t.Error("expected FAILED summary")
	}
}

func TestFormatCheckJSON(t *testing.T) {
	results := []checkResult{
		{pet: "Rex (#1)", name: "fun", value: 10, threshold: 25, passed: false},
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(formatCheckJSON(results)), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["status"] != "failed" {
		t.Errorf("expected status failed, got %v", parsed["status"])
	}
}

func TestValidateThresholds(t *testing.T) {
	if err := validateThresholds(0, 100); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateThresholds(-1, 50); err == nil {
		t.Error("expected error for negative energy")
	}
	if err := validateThresholds(50, 101); err == nil {
		t.Error("expected error for fun above 100")
	}
}

func TestCheckCommand_ExitCodes(t *testing.T) {
	env, api := newTestEnv(t)
	loggedIn(t, env, "alice")

	var buf bytes.Buffer
	if code := runCheck(context.Background(), &buf, env); code != exitError {
		t.Errorf("expected exit code 2 with no pets, got %d", code)
	}

	api.AddPet("alice", client.NewPetInput("Rex", client.Dog, client.Brown))
	buf.Reset()
	if code := runCheck(context.Background(), &buf, env); code != exitOK {
		t.Errorf("expected exit code 0, got %d: %s", code, buf.String())
	}

	api.AddPet("alice", client.PetInput{Name: "Tom", Type: client.Cat, Color: client.Brown, Energy: 5, Fun: 90})
	buf.Reset()
	if code := runCheck(context.Background(), &buf, env); code != exitFailure {
		t.Errorf("expected exit code 1, got %d: %s", code, buf.String())
	}
}
