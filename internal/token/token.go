// ABOUTME: Reads claims out of bearer tokens issued by the pet API
// ABOUTME: Signatures are never verified; results only gate what the UI shows

// Package token interprets bearer tokens locally, without contacting the
// server. It trusts the payload as-is: anything derived here (admin flag,
// expiry) is a display hint, and the pet API remains the only place where
// authorization is enforced.
//
// Every helper degrades to a safe answer on malformed input. A token that
// cannot be decoded has no authorities and is expired. A token without an
// exp claim is also expired; the web client this replaces compared a
// missing exp against the clock and so kept such tokens alive forever.
//
// Only exp and authorities can make a payload malformed. Other registered
// claims are read when they have the expected type and ignored otherwise.
package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminAuthority is the role that unlocks the admin views.
const AdminAuthority = "ADMIN"

// ErrMalformedToken is returned by Decode for anything that is not a
// three-segment token with a JSON object payload.
var ErrMalformedToken = errors.New("malformed token")

// Claims is the payload segment of a bearer token. Subject and IssuedAt are
// left empty when the payload carries them with an unexpected type.
type Claims struct {
	jwt.RegisteredClaims
	Authorities []string `json:"authorities,omitempty"`
}

// HasAuthority reports whether role is listed in the claims (exact match).
func (c *Claims) HasAuthority(role string) bool {
	return c != nil && slices.Contains(c.Authorities, role)
}

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Accept both base64 alphabets: the payload is decoded as if the URL-safe
// characters had been substituted into the standard alphabet.
var toURLAlphabet = strings.NewReplacer("+", "-", "/", "_")

// Inspector decodes tokens and answers role and expiry questions.
type Inspector struct {
	clock  Clock
	parser *jwt.Parser
}

// NewInspector creates an inspector reading time from clock.
// A nil clock means SystemClock.
func NewInspector(clock Clock) *Inspector {
	if clock == nil {
		clock = SystemClock
	}
	return &Inspector{
		clock:  clock,
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}
}

// Decode returns the claims carried by raw. Only the payload segment is
// read; the header and signature are ignored.
func (i *Inspector) Decode(raw string) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	payload, err := i.parser.DecodeSegment(toURLAlphabet.Replace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(payload), []byte("{")) {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}

	var m jwt.MapClaims
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}
	return claimsFrom(m)
}

func claimsFrom(m jwt.MapClaims) (*Claims, error) {
	exp, err := m.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: exp: %v", ErrMalformedToken, err)
	}
	authorities, err := authoritiesFrom(m["authorities"])
	if err != nil {
		return nil, err
	}

	claims := &Claims{Authorities: authorities}
	claims.ExpiresAt = exp
	claims.Subject, _ = m.GetSubject()
	claims.IssuedAt, _ = m.GetIssuedAt()
	return claims, nil
}

func authoritiesFrom(v interface{}) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: authorities is not a list", ErrMalformedToken)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		role, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: authorities holds a non-string entry", ErrMalformedToken)
		}
		out = append(out, role)
	}
	return out, nil
}

// HasAuthority reports whether raw decodes and lists role among its
// authorities.
func (i *Inspector) HasAuthority(raw, role string) bool {
	claims, err := i.Decode(raw)
	if err != nil {
		return false
	}
	return claims.HasAuthority(role)
}

// IsExpired reports whether raw is past its expiry. Undecodable tokens and
// tokens without an exp claim count as expired.
func (i *Inspector) IsExpired(raw string) bool {
	claims, err := i.Decode(raw)
	if err != nil {
		return true
	}
	return i.expired(claims)
}

// ExpiresIn returns the time left before raw expires, or zero when it is
// already expired or undecodable.
func (i *Inspector) ExpiresIn(raw string) time.Duration {
	claims, err := i.Decode(raw)
	if err != nil || i.expired(claims) {
		return 0
	}
	return claims.ExpiresAt.Sub(i.clock.Now())
}

func (i *Inspector) expired(claims *Claims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	// Compared in whole epoch seconds, strictly before now.
	now := i.clock.Now().Truncate(time.Second)
	return claims.ExpiresAt.Before(now)
}
