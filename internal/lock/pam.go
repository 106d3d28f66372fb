package lock

import (
	"errors"
	"fmt"

	"github.com/msteinert/pam"
)

// PamAuthenticator authenticates a password against a PAM service,
// following the same conversation-function shape the teacher project
// uses for its own PAM fallback.
type PamAuthenticator struct {
	ServiceName string
}

// NewPamAuthenticator returns an Authenticator using PAM service "flick".
func NewPamAuthenticator() *PamAuthenticator {
	return &PamAuthenticator{ServiceName: "flick"}
}

// Authenticate runs the PAM authenticate + account-management sequence
// for username with password.
func (a *PamAuthenticator) Authenticate(username, password string) (bool, error) {
	conv := func(style pam.Style, msg string) (string, error) {
		switch style {
		case pam.PromptEchoOff:
			return password, nil
		case pam.PromptEchoOn:
			return "", nil
		case pam.ErrorMsg, pam.TextInfo:
			return "", nil
		default:
			return "", errors.New("unexpected conversation style")
		}
	}

	t, err := pam.StartFunc(a.ServiceName, username, conv)
	if err != nil {
		return false, fmt.Errorf("start PAM transaction: %w", err)
	}
	if err := t.Authenticate(0); err != nil {
		return false, nil
	}
	if err := t.AcctMgmt(0); err != nil {
		return false, nil
	}
	return true, nil
}
