// Package ui provides the interactive terminal chrome and prompts
// used by cmd/vaultfs before the REPL takes over, grounded on the
// teacher's internal/ui package.
package ui

import (
	"fmt"

	"github.com/inancgumus/screen"
)

// Terminal provides methods for terminal screen manipulation.
type Terminal struct{}

// NewTerminal creates a new Terminal instance.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Reset clears the screen and homes the cursor, the sequence every
// vaultfs subcommand runs before its first prompt.
func (t *Terminal) Reset() {
	screen.Clear()
	screen.MoveTopLeft()
}

// Banner prints the vault path a subcommand is about to operate on,
// right after Reset, so the operator can confirm they're pointed at
// the right file before typing a password.
func (t *Terminal) Banner(vaultPath string) {
	fmt.Printf("vaultfs — %s\n\n", vaultPath)
}
