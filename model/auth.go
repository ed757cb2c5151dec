package model

import "scantui/client"

// AuthState holds the current identity. Checked distinguishes "startup
// resolution has completed" from "identity present" so the UI can avoid
// flashing a logged-out view before the who-am-i round trip finishes.
type AuthState struct {
	User    *client.Identity
	Checked bool
}

func (a *AuthState) Authenticated() bool {
	return a.User != nil
}

func (a *AuthState) Set(user *client.Identity) {
	a.User = user
}

func (a *AuthState) Clear() {
	a.User = nil
}

func (a *AuthState) Username() string {
	if a.User == nil {
		return ""
	}
	return a.User.Username
}
