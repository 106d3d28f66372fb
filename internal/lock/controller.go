// Package lock implements the lock-screen authentication state machine:
// PIN, pattern and password modes with rate limiting, and a PAM fallback
// for password mode.
package lock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const lockoutWindow = 30 * time.Second

// InputMode is the entry method currently shown on the lock screen.
type InputMode int

const (
	InputPin InputMode = iota
	InputPattern
	InputPassword
)

// Authenticator verifies a password for a user, typically backed by PAM.
type Authenticator interface {
	Authenticate(username, password string) (bool, error)
}

// State is the mutable lock-screen state.
type State struct {
	Mode              InputMode
	EnteredPIN        string
	PatternNodes      []int
	EnteredPassword   string
	FailedAttempts    int
	LastFailedAttempt time.Time
	HasFailure        bool
	ErrorMessage      string
}

// Controller drives lock-screen authentication against a Config and an
// Authenticator, exposing try_unlock-style operations per input mode.
type Controller struct {
	cfg   Config
	state State
	auth  Authenticator
	user  string
	now   func() time.Time
}

// NewController builds a controller for cfg, authenticating password mode
// as user via auth.
func NewController(cfg Config, auth Authenticator, user string) *Controller {
	mode := InputPassword
	switch cfg.Method {
	case MethodPin:
		mode = InputPin
	case MethodPattern:
		mode = InputPattern
	}
	return &Controller{cfg: cfg, auth: auth, user: user, state: State{Mode: mode}, now: time.Now}
}

// State returns a copy of the current lock-screen state.
func (c *Controller) State() State { return c.state }

// IsLockedOut reports whether the rate limiter currently blocks attempts.
func (c *Controller) IsLockedOut() bool {
	if c.state.FailedAttempts < c.cfg.MaxAttempts || !c.state.HasFailure {
		return false
	}
	return c.now().Sub(c.state.LastFailedAttempt) < lockoutWindow
}

// LockoutRemaining reports how long until the rate limiter clears, or 0.
func (c *Controller) LockoutRemaining() time.Duration {
	if !c.IsLockedOut() {
		return 0
	}
	remaining := lockoutWindow - c.now().Sub(c.state.LastFailedAttempt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *Controller) recordFailure(msg string) {
	c.state.FailedAttempts++
	c.state.HasFailure = true
	c.state.LastFailedAttempt = c.now()
	c.state.ErrorMessage = msg
}

// unlock resets attempt state and clears all entry buffers.
func (c *Controller) unlock() {
	c.state.FailedAttempts = 0
	c.state.HasFailure = false
	c.state.ErrorMessage = ""
	c.state.EnteredPIN = ""
	c.state.PatternNodes = nil
	c.state.EnteredPassword = ""
}

// SwitchToPassword switches input mode to password, clearing other
// buffers. Callers show the on-screen keyboard in response.
func (c *Controller) SwitchToPassword() {
	c.state.Mode = InputPassword
	c.state.EnteredPIN = ""
	c.state.PatternNodes = nil
	c.state.EnteredPassword = ""
	c.state.ErrorMessage = ""
}

// EnterPinDigit appends digit to the PIN buffer and, at 4 or 5 digits,
// performs a silent try (failure does not reset the buffer or count
// toward the limiter); at exactly 6 digits it performs a committed try.
// It reports whether the lock unlocked.
func (c *Controller) EnterPinDigit(digit rune) bool {
	if c.IsLockedOut() {
		return false
	}
	c.state.EnteredPIN += string(digit)
	n := len(c.state.EnteredPIN)

	switch {
	case n == 4 || n == 5:
		if verifyPin(c.cfg.PinHash, c.state.EnteredPIN) {
			c.unlock()
			return true
		}
		return false
	case n == 6:
		if verifyPin(c.cfg.PinHash, c.state.EnteredPIN) {
			c.unlock()
			return true
		}
		remaining := max0(c.cfg.MaxAttempts - c.state.FailedAttempts - 1)
		c.recordFailure(fmt.Sprintf("Incorrect PIN (%d attempts remaining)", remaining))
		c.state.EnteredPIN = ""
		return false
	default:
		return false
	}
}

// SubmitPattern evaluates the accumulated pattern node sequence. Fewer
// than 4 nodes is rejected without counting as an attempt, and the nodes
// are kept so entry can continue; a submitted pattern is a committed try
// and clears the buffer whether or not it matches.
func (c *Controller) SubmitPattern() bool {
	if len(c.state.PatternNodes) < 4 {
		return false
	}
	if c.IsLockedOut() {
		c.state.PatternNodes = nil
		return false
	}
	joined := joinNodes(c.state.PatternNodes)
	ok, newHash := verifyOrSetup(c.cfg.PatternHash, joined)
	if newHash != "" {
		c.cfg.PatternHash = newHash
	}
	if ok {
		c.unlock()
		return true
	}
	remaining := max0(c.cfg.MaxAttempts - c.state.FailedAttempts - 1)
	c.recordFailure(fmt.Sprintf("Incorrect pattern (%d attempts remaining)", remaining))
	c.state.PatternNodes = nil
	return false
}

// AddPatternNode appends a node index to the in-progress pattern.
func (c *Controller) AddPatternNode(node int) {
	c.state.PatternNodes = append(c.state.PatternNodes, node)
}

// TryPassword authenticates the entered password via PAM under service
// "flick". On success the lock resets and unlocks.
func (c *Controller) TryPassword() (bool, error) {
	if c.IsLockedOut() {
		return false, nil
	}
	ok, err := c.auth.Authenticate(c.user, c.state.EnteredPassword)
	if err != nil {
		c.recordFailure("Authentication error")
		c.state.EnteredPassword = ""
		return false, err
	}
	if ok {
		c.unlock()
		return true, nil
	}
	remaining := max0(c.cfg.MaxAttempts - c.state.FailedAttempts - 1)
	c.recordFailure(fmt.Sprintf("Incorrect password (%d attempts remaining)", remaining))
	c.state.EnteredPassword = ""
	return false, nil
}

func joinNodes(nodes []int) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// verifyPin is a strict compare-only check: a PIN is never accepted
// against a hash that hasn't been set up yet, unlike pattern entry.
func verifyPin(hash, secret string) bool {
	if !strings.HasPrefix(hash, "$2") {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// verifyOrSetup checks secret against hash. If hash is not a valid bcrypt
// hash yet (doesn't start with "$2"), the first submission of length >= 4
// is accepted as first-time setup and a fresh hash is returned for the
// caller to persist. Pattern entry is the only policy with this fallback;
// PIN entry uses verifyPin, a strict compare with no auto-accept branch.
func verifyOrSetup(hash, secret string) (ok bool, newHash string) {
	if !strings.HasPrefix(hash, "$2") {
		if len(secret) < 4 {
			return false, ""
		}
		h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return false, ""
		}
		return true, string(h)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil, ""
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
