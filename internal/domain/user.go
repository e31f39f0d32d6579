// Package domain contains entity without logic, just meta-data
package domain

import "errors"

var (
	ErrUsernameEmpty = errors.New("username empty")
	ErrTokenEmpty    = errors.New("token empty")
)

// Credentials is the identity asserted by a client at login.
type Credentials struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// NewCredentials is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewCredentials(username, token string) (Credentials, error) {
	if username == "" {
		return Credentials{}, ErrUsernameEmpty
	}
	if token == "" {
		return Credentials{}, ErrTokenEmpty
	}
	return Credentials{Username: username, Token: token}, nil
}
