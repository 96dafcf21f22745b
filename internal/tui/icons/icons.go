// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Pet, stat and action glyphs that degrade on plain terminals

package icons

import (
	"os"
	"strings"
	"sync"

	"github.com/markalston/petcare-cli/internal/client"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals usually ship with a patched font.
var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

func detectNerdFonts() bool {
	if env := os.Getenv("PETCARE_NERD_FONTS"); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts reports whether Nerd Font glyphs should be used.
// Detection runs once per process.
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon holds a Nerd Font glyph and its plain Unicode fallback.
type Icon struct {
	NerdFont string
	Fallback string
}

func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Pets
	Dog  = Icon{"󰩃", "◆"} // nf-md-dog
	Cat  = Icon{"󰄛", "◇"} // nf-md-cat
	Fish = Icon{"󰈺", "◈"} // nf-md-fish
	Paw  = Icon{"󰩃", "✦"}

	// Stats
	Energy = Icon{"󱐋", "ϟ"} // nf-md-lightning_bolt
	Fun    = Icon{"󰇹", "☺"} // nf-md-emoticon
	Food   = Icon{"󰩰", "◉"} // nf-md-food_drumstick

	// Status
	CheckOK  = Icon{"", "✓"}
	Warning  = Icon{"", "⚠"}
	Critical = Icon{"", "✗"}
	Info     = Icon{"", "ℹ"}

	// Actions
	Feed    = Icon{"󰩰", "◉"}
	Play    = Icon{"󰊴", "▶"} // nf-md-gamepad
	Sleep   = Icon{"󰒲", "☾"} // nf-md-sleep
	Add     = Icon{"󰐕", "+"}
	Edit    = Icon{"󰏫", "✎"}
	Delete  = Icon{"󰆴", "⌫"}
	Refresh = Icon{"󰑓", "↻"}
	Back    = Icon{"󰁍", "←"}
	Quit    = Icon{"󰗼", "×"}

	// People
	User  = Icon{"󰀄", "●"}
	Admin = Icon{"󰒃", "⛊"} // nf-md-shield_check
)

// ForPetType returns the glyph for a pet species.
func ForPetType(t client.PetType) Icon {
	switch t {
	case client.Dog:
		return Dog
	case client.Cat:
		return Cat
	case client.Fish:
		return Fish
	default:
		return Paw
	}
}

// ForAction returns the glyph for a care action.
func ForAction(a client.Action) Icon {
	switch a {
	case client.ActionFeed:
		return Feed
	case client.ActionPlay:
		return Play
	case client.ActionSleep:
		return Sleep
	default:
		return Info
	}
}
