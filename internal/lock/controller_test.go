package lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuth struct {
	ok  bool
	err error
}

func (f *fakeAuth) Authenticate(user, password string) (bool, error) { return f.ok, f.err }

func hashOf(t *testing.T, s string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(h)
}

func TestPinCommittedTryAtSixDigits(t *testing.T) {
	cfg := Config{Method: MethodPin, PinHash: hashOf(t, "123456"), MaxAttempts: 5}
	c := NewController(cfg, &fakeAuth{}, "u")

	for _, d := range "12345" {
		require.False(t, c.EnterPinDigit(d))
	}
	require.True(t, c.EnterPinDigit('6'))
}

func TestPinFourDigitSilentTrySucceeds(t *testing.T) {
	cfg := Config{Method: MethodPin, PinHash: hashOf(t, "1234"), MaxAttempts: 5}
	c := NewController(cfg, &fakeAuth{}, "u")
	for _, d := range "123" {
		require.False(t, c.EnterPinDigit(d))
	}
	require.True(t, c.EnterPinDigit('4'))
}

func TestPinSilentTryFailureDoesNotResetOrCount(t *testing.T) {
	cfg := Config{Method: MethodPin, PinHash: hashOf(t, "9999"), MaxAttempts: 5}
	c := NewController(cfg, &fakeAuth{}, "u")
	for _, d := range "1234" {
		c.EnterPinDigit(d)
	}
	require.Equal(t, "1234", c.state.EnteredPIN)
	require.Equal(t, 0, c.state.FailedAttempts)
}

func TestPinCommittedTryFailureResetsAndCounts(t *testing.T) {
	cfg := Config{Method: MethodPin, PinHash: hashOf(t, "999999"), MaxAttempts: 5}
	c := NewController(cfg, &fakeAuth{}, "u")
	for _, d := range "123456" {
		c.EnterPinDigit(d)
	}
	require.Equal(t, "", c.state.EnteredPIN)
	require.Equal(t, 1, c.state.FailedAttempts)
}

func TestPinWithNoHashConfiguredNeverUnlocks(t *testing.T) {
	cfg := Config{Method: MethodPin, PinHash: "", MaxAttempts: 5}
	c := NewController(cfg, &fakeAuth{}, "u")

	for _, d := range "123456" {
		require.False(t, c.EnterPinDigit(d))
	}

	// A second attempt with the same digits must still fail: unlike
	// pattern entry, an unset PIN hash never auto-accepts a first try.
	c.state.EnteredPIN = ""
	for _, d := range "123456" {
		require.False(t, c.EnterPinDigit(d))
	}
}

func TestPatternRejectsThreeAcceptsFour(t *testing.T) {
	cfg := Config{Method: MethodPattern, PatternHash: hashOf(t, "1,2,3,4"), MaxAttempts: 5}
	c := NewController(cfg, &fakeAuth{}, "u")

	c.AddPatternNode(1)
	c.AddPatternNode(2)
	c.AddPatternNode(3)
	require.False(t, c.SubmitPattern())

	c.AddPatternNode(4)
	require.True(t, c.SubmitPattern())
}

func TestPatternFirstTimeSetupAccepted(t *testing.T) {
	cfg := Config{Method: MethodPattern, MaxAttempts: 5}
	c := NewController(cfg, &fakeAuth{}, "u")
	c.AddPatternNode(0)
	c.AddPatternNode(1)
	c.AddPatternNode(2)
	c.AddPatternNode(3)
	require.True(t, c.SubmitPattern())
	require.NotEmpty(t, c.cfg.PatternHash)
}

func TestLockoutAfterMaxAttempts(t *testing.T) {
	cfg := Config{Method: MethodPassword, MaxAttempts: 2}
	c := NewController(cfg, &fakeAuth{ok: false}, "u")
	base := time.Unix(1000, 0)
	c.now = func() time.Time { return base }

	c.state.EnteredPassword = "wrong"
	ok, err := c.TryPassword()
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, c.IsLockedOut())

	c.state.EnteredPassword = "wrong"
	ok, err = c.TryPassword()
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, c.IsLockedOut())

	c.now = func() time.Time { return base.Add(30 * time.Second) }
	require.False(t, c.IsLockedOut())
}

func TestFailedAttemptAlwaysIncreasesAndStampsTime(t *testing.T) {
	cfg := Config{Method: MethodPassword, MaxAttempts: 10}
	c := NewController(cfg, &fakeAuth{ok: false}, "u")
	t1 := time.Unix(500, 0)
	c.now = func() time.Time { return t1 }
	c.state.EnteredPassword = "x"
	c.TryPassword()
	require.Equal(t, 1, c.state.FailedAttempts)
	require.Equal(t, t1, c.state.LastFailedAttempt)
}
