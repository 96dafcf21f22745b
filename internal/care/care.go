// ABOUTME: Pet wellbeing rules shared by the CLI and the TUI
// ABOUTME: Decides which care actions a pet needs and summarizes a group of pets

package care

import "github.com/markalston/petcare-cli/internal/client"

// NeedThreshold is the energy or fun level below which a pet wants care.
const NeedThreshold = 50

// Wellbeing levels
const (
	LevelOK       = "ok"
	LevelWarning  = "warning"
	LevelCritical = "critical"
)

// Needs returns the actions that would help p, most urgent first.
func Needs(p client.Pet) []client.Action {
	var needs []client.Action
	if p.Hungry {
		needs = append(needs, client.ActionFeed)
	}
	if p.Energy < NeedThreshold {
		needs = append(needs, client.ActionSleep)
	}
	if p.Fun < NeedThreshold {
		needs = append(needs, client.ActionPlay)
	}
	return needs
}

// Level grades a 0-100 stat where low is bad.
func Level(value int) string {
	switch {
	case value < NeedThreshold/2:
		return LevelCritical
	case value < NeedThreshold:
		return LevelWarning
	default:
		return LevelOK
	}
}

// Summary aggregates a list of pets.
type Summary struct {
	Total        int     `json:"total"`
	Hungry       int     `json:"hungry"`
	NeedingCare  int     `json:"needing_care"`
	AvgEnergy    float64 `json:"avg_energy"`
	AvgFun       float64 `json:"avg_fun"`
	LowestEnergy int     `json:"lowest_energy"`
	LowestFun    int     `json:"lowest_fun"`
}

// Summarize computes a Summary. An empty list yields the zero Summary.
func Summarize(pets []client.Pet) Summary {
	var s Summary
	if len(pets) == 0 {
		return s
	}

	s.Total = len(pets)
	s.LowestEnergy = client.MaxStat
	s.LowestFun = client.MaxStat
	energy, fun := 0, 0
	for _, p := range pets {
		if p.Hungry {
			s.Hungry++
		}
		if len(Needs(p)) > 0 {
			s.NeedingCare++
		}
		energy += p.Energy
		fun += p.Fun
		s.LowestEnergy = min(s.LowestEnergy, p.Energy)
		s.LowestFun = min(s.LowestFun, p.Fun)
	}
	s.AvgEnergy = float64(energy) / float64(s.Total)
	s.AvgFun = float64(fun) / float64(s.Total)
	return s
}
