// ABOUTME: Wire types for the pet-care API
// ABOUTME: Includes client-side validation run before any request is sent

package client

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidInput wraps every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// PetType is the species of a pet.
type PetType string

const (
	Dog  PetType = "DOG"
	Cat  PetType = "CAT"
	Fish PetType = "FISH"
)

// PetTypes lists the accepted pet types in display order.
var PetTypes = []PetType{Dog, Cat, Fish}

// PetColor is the coat of a pet.
type PetColor string

const (
	Brown   PetColor = "BROWN"
	Violet  PetColor = "VIOLET"
	Striped PetColor = "STRIPED"
)

// PetColors lists the accepted colors in display order.
var PetColors = []PetColor{Brown, Violet, Striped}

// ParsePetType accepts any casing of a known type.
func ParsePetType(s string) (PetType, error) {
	t := PetType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range PetTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown pet type %q (want dog, cat or fish)", ErrInvalidInput, s)
}

// ParsePetColor accepts any casing of a known color.
func ParsePetColor(s string) (PetColor, error) {
	c := PetColor(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range PetColors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown pet color %q (want brown, violet or striped)", ErrInvalidInput, s)
}

// Stat bounds for energy and fun.
const (
	MinStat = 0
	MaxStat = 100
)

// Pet represents a pet as returned by the API
type Pet struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Type   PetType  `json:"type"`
	Color  PetColor `json:"color"`
	Energy int      `json:"energy"`
	Hungry bool     `json:"hungry"`
	Fun    int      `json:"fun"`
}

// Input returns the editable fields of p.
func (p Pet) Input() PetInput {
	return PetInput{
		Name:   p.Name,
		Type:   p.Type,
		Color:  p.Color,
		Energy: p.Energy,
		Hungry: p.Hungry,
		Fun:    p.Fun,
	}
}

// PetInput is the body of create and update calls.
type PetInput struct {
	Name   string   `json:"name"`
	Type   PetType  `json:"type"`
	Color  PetColor `json:"color"`
	Energy int      `json:"energy"`
	Hungry bool     `json:"hungry"`
	Fun    int      `json:"fun"`
}

// NewPetInput returns the defaults a freshly created pet starts with.
func NewPetInput(name string, t PetType, c PetColor) PetInput {
	return PetInput{Name: name, Type: t, Color: c, Energy: MaxStat, Hungry: false, Fun: MaxStat}
}

// Validate checks the input against the API's constraints.
func (in PetInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !slices.Contains(PetTypes, in.Type) {
		return fmt.Errorf("%w: unknown pet type %q", ErrInvalidInput, in.Type)
	}
	if !slices.Contains(PetColors, in.Color) {
		return fmt.Errorf("%w: unknown pet color %q", ErrInvalidInput, in.Color)
	}
	if in.Energy < MinStat || in.Energy > MaxStat {
		return fmt.Errorf("%w: energy must be between %d and %d, got %d", ErrInvalidInput, MinStat, MaxStat, in.Energy)
	}
	if in.Fun < MinStat || in.Fun > MaxStat {
		return fmt.Errorf("%w: fun must be between %d and %d, got %d", ErrInvalidInput, MinStat, MaxStat, in.Fun)
	}
	return nil
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Validate requires both credentials.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.UserName) == "" {
		return fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	return nil
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
}

// Registration is the body of POST /auth/register
type Registration struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Validate checks the registration fields.
func (r Registration) Validate() error {
	if err := (LoginRequest{UserName: r.UserName, Password: r.Password}).Validate(); err != nil {
		return err
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidInput, r.Email)
	}
	return nil
}

// RegistrationResponse describes the created account.
type RegistrationResponse struct {
	ID       int64  `json:"id,omitempty"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Action is a care action that can be performed on a pet.
type Action string

const (
	ActionFeed  Action = "feed"
	ActionPlay  Action = "play"
	ActionSleep Action = "sleep"
)

// Past returns the action in a form suitable for status lines.
func (a Action) Past() string {
	switch a {
	case ActionFeed:
		return "fed"
	case ActionPlay:
		return "played with"
	case ActionSleep:
		return "put to sleep"
	default:
		return string(a)
	}
}
