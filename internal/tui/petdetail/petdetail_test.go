// ABOUTME: Tests for the pet detail view
// ABOUTME: Validates stat blocks, hunger badge and suggested care

package petdetail

import (
	"strings"
	"testing"

	"github.com/markalston/petcare-cli/internal/client"
)

func TestDetailNilPet(t *testing.T) {
	d := New(nil, 80)
	if !strings.Contains(d.View(), "Loading") {
		t.Error("expected loading message when pet is nil")
	}
}

func TestDetailHealthyPet(t *testing.T) {
	pet := &client.Pet{ID: 1, Name: "Rex", Type: client.Dog, Color: client.Brown, Energy: 90, Fun: 75}
	view := New(pet, 100).View()

	for _, want := range []string{"Rex", "#1", "brown dog", "FED", "Energy", "Fun", "90", "75", "happy and healthy"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\nView:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Suggested care") {
		t.Error("healthy pet should have no suggestions")
	}
}

func TestDetailNeedyPet(t *testing.T) {
	pet := &client.Pet{ID: 2, Name: "Tom", Type: client.Cat, Color: client.Striped, Energy: 10, Fun: 30, Hungry: true}
	view := New(pet, 100).View()

	for _, want := range []string{"HUNGRY", "Suggested care", "feed (f)", "sleep (s)", "play (p)", "exhausted", "bored"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\nView:\n%s", want, view)
		}
	}

	feed := strings.Index(view, "feed (f)")
	sleep := strings.Index(view, "sleep (s)")
	play := strings.Index(view, "play (p)")
	if !(feed < sleep && sleep < play) {
		t.Error("expected suggestions in feed, sleep, play order")
	}
}

func TestDetailSetPet(t *testing.T) {
	d := New(nil, 40)
	d.SetPet(&client.Pet{ID: 5, Name: "Nemo", Type: client.Fish, Color: client.Violet, Energy: 50, Fun: 50})
	d.SetWidth(40)

	if d.Pet().Name != "Nemo" {
		t.Errorf("expected Nemo, got %s", d.Pet().Name)
	}
	view := d.View()
	if !strings.Contains(view, "Nemo") || !strings.Contains(view, "Energy") {
		t.Errorf("unexpected narrow view:\n%s", view)
	}
}
