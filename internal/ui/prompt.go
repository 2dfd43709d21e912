package ui

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// ErrPasswordMismatch is returned when a password and its confirmation
// entry do not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Prompt provides interactive command-line prompts for vault setup.
type Prompt struct{}

// NewPrompt creates a new Prompt instance.
func NewPrompt() *Prompt {
	return &Prompt{}
}

// GetNewPassword prompts for and confirms a password for a freshly
// created volume, labeled (e.g. "real volume", "decoy volume") so the
// caller can run it twice during the standard deniable-bootstrap flow.
func (p *Prompt) GetNewPassword(label string) (string, error) {
	password, err := p.getPassword(fmt.Sprintf("Enter password for %s:", label))
	if err != nil {
		return "", fmt.Errorf("failed to get password: %w", err)
	}

	confirm, err := p.getPassword(fmt.Sprintf("Confirm password for %s:", label))
	if err != nil {
		return "", fmt.Errorf("failed to confirm password: %w", err)
	}

	if password != confirm {
		return "", ErrPasswordMismatch
	}
	return password, nil
}

func (p *Prompt) getPassword(message string) (string, error) {
	var password string
	prompt := &survey.Password{Message: message}
	return password, survey.AskOne(prompt, &password)
}

// Confirm asks a yes/no question, e.g. confirming an alias_slot
// bootstrap before it overwrites a header slot.
func (p *Prompt) Confirm(message string) (bool, error) {
	var result bool
	prompt := &survey.Confirm{Message: message}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, fmt.Errorf("failed to confirm: %w", err)
	}
	return result, nil
}
