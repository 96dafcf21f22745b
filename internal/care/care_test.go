// ABOUTME: Tests for pet wellbeing rules
// ABOUTME: Covers needs, levels and summaries

package care

import (
	"testing"

	"github.com/markalston/petcare-cli/internal/client"
	"github.com/stretchr/testify/assert"
)

func TestNeeds(t *testing.T) {
	tests := []struct {
		name string
		pet  client.Pet
		want []client.Action
	}{
		{"content", client.Pet{Energy: 50, Fun: 50}, nil},
		{"hungry", client.Pet{Hungry: true, Energy: 80, Fun: 80}, []client.Action{client.ActionFeed}},
		{"tired and bored", client.Pet{Energy: 49, Fun: 10}, []client.Action{client.ActionSleep, client.ActionPlay}},
		{"everything", client.Pet{Hungry: true}, []client.Action{client.ActionFeed, client.ActionSleep, client.ActionPlay}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Needs(tc.pet))
		})
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, LevelOK, Level(100))
	assert.Equal(t, LevelOK, Level(50))
	assert.Equal(t, LevelWarning, Level(49))
	assert.Equal(t, LevelWarning, Level(25))
	assert.Equal(t, LevelCritical, Level(24))
	assert.Equal(t, LevelCritical, Level(0))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]client.Pet{
		{Energy: 100, Fun: 80},
		{Energy: 20, Fun: 60, Hungry: true},
	})
	assert.Equal(t, Summary{
		Total:        2,
		Hungry:       1,
		NeedingCare:  1,
		AvgEnergy:    60,
		AvgFun:       70,
		LowestEnergy: 20,
		LowestFun:    60,
	}, s)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}
