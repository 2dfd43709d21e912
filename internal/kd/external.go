package kd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ExternalAuthenticator runs a configured binary, feeding it the
// candidate password on stdin, and maps its exit code to a boolean:
// exit 0 means recognized, exit 2 (documented "missing inputs") and
// every other nonzero exit mean not recognized. A failure to launch
// the binary at all is treated identically to kd_ok = false — it is
// never surfaced as a mount error (spec.md §6).
type ExternalAuthenticator struct {
	Path string
}

func NewExternalAuthenticator(path string) *ExternalAuthenticator {
	return &ExternalAuthenticator{Path: path}
}

func (a *ExternalAuthenticator) Authenticate(ctx context.Context, password string) (bool, error) {
	cmd := exec.CommandContext(ctx, a.Path)
	cmd.Stdin = bytes.NewBufferString(password)

	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	// Binary not found, not executable, or otherwise failed to launch.
	return false, nil
}
