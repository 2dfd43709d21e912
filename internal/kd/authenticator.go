// Package kd provides the keystroke-dynamics gate consulted during
// mount, per spec.md §4.4 and §6. The vault itself never interprets
// typing cadence; it only asks an Authenticator for a yes/no answer.
package kd

import "context"

// Authenticator reports whether the current user's typing pattern is
// recognized for password. Implementations must treat "I can't tell"
// and "launch failed" the same way as "no": returning false, never an
// error, so a missing or broken authenticator silently falls back to
// the password-only mount path instead of blocking it.
type Authenticator interface {
	Authenticate(ctx context.Context, password string) (bool, error)
}

// NeverAuthenticator always reports false. It is the default when no
// external authenticator binary is configured (spec.md §6).
type NeverAuthenticator struct{}

func (NeverAuthenticator) Authenticate(ctx context.Context, password string) (bool, error) {
	return false, nil
}
