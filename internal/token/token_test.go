// ABOUTME: Tests for bearer token decoding and claim checks
// ABOUTME: Covers malformed input, authority lookup and fail-closed expiry

package token_test

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/markalston/petcare-cli/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func fixedClock() token.Clock {
	return token.ClockFunc(func() time.Time { return fixedNow })
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func withPayload(payload string) string {
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".c2ln"
}

func TestDecode_SegmentCount(t *testing.T) {
	insp := token.NewInspector(fixedClock())

	for _, raw := range []string{"", "abc", "a.b", "a.b.c.d", "....", "a..b.c"} {
		t.Run(raw, func(t *testing.T) {
			claims, err := insp.Decode(raw)
			require.ErrorIs(t, err, token.ErrMalformedToken)
			assert.Nil(t, claims)
		})
	}
}

func TestDecode_Payload(t *testing.T) {
	insp := token.NewInspector(fixedClock())

	t.Run("signed token", func(t *testing.T) {
		raw := signed(t, jwt.MapClaims{
			"sub":         "alice",
			"authorities": []string{"ADMIN", "USER"},
			"iat":         fixedNow.Add(-time.Hour).Unix(),
			"exp":         fixedNow.Add(time.Hour).Unix(),
		})

		claims, err := insp.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.Equal(t, []string{"ADMIN", "USER"}, claims.Authorities)
		assert.Equal(t, fixedNow.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		assert.Equal(t, fixedNow.Add(-time.Hour).Unix(), claims.IssuedAt.Unix())
	})

	t.Run("padded segment", func(t *testing.T) {
		payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"bob"}`))
		claims, err := insp.Decode("h." + payload + ".s")
		require.NoError(t, err)
		assert.Equal(t, "bob", claims.Subject)
	})

	t.Run("standard alphabet", func(t *testing.T) {
		// "??>>" encodes with both "/" and "+".
		payload := base64.RawStdEncoding.EncodeToString([]byte(`{"sub":"??>>"}`))
		claims, err := insp.Decode("h." + payload + ".s")
		require.NoError(t, err)
		assert.Equal(t, "??>>", claims.Subject)
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"not base64", "h.!!!.s"},
		{"not json", withPayload("not json")},
		{"json array", withPayload(`["ADMIN"]`)},
		{"json null", withPayload("null")},
		{"json number", withPayload("42")},
		{"bad exp type", withPayload(`{"exp":"tomorrow"}`)},
		{"authorities not a list", withPayload(`{"authorities":"ADMIN"}`)},
		{"authorities with a number", withPayload(`{"authorities":["ADMIN",7]}`)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := insp.Decode(tc.raw)
			require.ErrorIs(t, err, token.ErrMalformedToken)
			assert.Nil(t, claims)
		})
	}
}

func TestDecode_IgnoresUnexpectedUnusedClaims(t *testing.T) {
	insp := token.NewInspector(fixedClock())
	exp := fixedNow.Add(time.Hour).Unix()

	tests := []struct {
		name    string
		payload string
	}{
		{"numeric sub", `{"sub":42,"authorities":["ADMIN"],"exp":%d}`},
		{"numeric jti", `{"jti":7,"authorities":["ADMIN"],"exp":%d}`},
		{"object iss", `{"iss":{"name":"api"},"authorities":["ADMIN"],"exp":%d}`},
		{"string iat", `{"iat":"yesterday","authorities":["ADMIN"],"exp":%d}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := withPayload(fmt.Sprintf(tc.payload, exp))

			claims, err := insp.Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, exp, claims.ExpiresAt.Unix())
			assert.False(t, insp.IsExpired(raw))
			assert.True(t, insp.HasAuthority(raw, token.AdminAuthority))
		})
	}

	claims, err := insp.Decode(withPayload(`{"sub":42}`))
	require.NoError(t, err)
	assert.Empty(t, claims.Subject)
	assert.Nil(t, claims.IssuedAt)
}

func TestHasAuthority(t *testing.T) {
	insp := token.NewInspector(fixedClock())
	raw := signed(t, jwt.MapClaims{"authorities": []string{"ADMIN", "USER"}})

	assert.True(t, insp.HasAuthority(raw, "ADMIN"))
	assert.True(t, insp.HasAuthority(raw, "USER"))
	assert.False(t, insp.HasAuthority(raw, "OTHER"))
	assert.False(t, insp.HasAuthority(raw, "admin"), "match is case sensitive")

	assert.False(t, insp.HasAuthority(withPayload(`{"sub":"x"}`), "ADMIN"), "no authorities list")
	assert.False(t, insp.HasAuthority("garbage", "ADMIN"))
}

func TestIsExpired(t *testing.T) {
	insp := token.NewInspector(fixedClock())

	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{"expired yesterday", signed(t, jwt.MapClaims{"exp": fixedNow.Add(-24 * time.Hour).Unix()}), true},
		{"one second ago", signed(t, jwt.MapClaims{"exp": fixedNow.Unix() - 1}), true},
		{"expires now", signed(t, jwt.MapClaims{"exp": fixedNow.Unix()}), false},
		{"expires tomorrow", signed(t, jwt.MapClaims{"exp": fixedNow.Add(24 * time.Hour).Unix()}), false},
		{"no exp claim", signed(t, jwt.MapClaims{"sub": "alice"}), true},
		{"undecodable", "not-a-token", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, insp.IsExpired(tc.raw))
		})
	}
}

func TestExpiresIn(t *testing.T) {
	insp := token.NewInspector(fixedClock())

	live := signed(t, jwt.MapClaims{"exp": fixedNow.Add(90 * time.Minute).Unix()})
	assert.Equal(t, 90*time.Minute, insp.ExpiresIn(live))

	dead := signed(t, jwt.MapClaims{"exp": fixedNow.Add(-time.Minute).Unix()})
	assert.Zero(t, insp.ExpiresIn(dead))
	assert.Zero(t, insp.ExpiresIn("x.y.z"))
}

func TestNewInspector_NilClockUsesSystemClock(t *testing.T) {
	insp := token.NewInspector(nil)
	raw := signed(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	assert.False(t, insp.IsExpired(raw))
}
