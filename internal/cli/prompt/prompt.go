// Package prompt asks the user for confirmations and credentials. Every
// prompt refuses to run without a terminal so scripts fail fast instead
// of hanging on stdin.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

var (
	// ErrAborted is returned when the user presses Ctrl+C or Ctrl+D.
	ErrAborted = errors.New("aborted")
	// ErrNoTerminal is returned when a prompt is needed but stdin is not a
	// terminal.
	ErrNoTerminal = errors.New("stdin is not a terminal")
)

// isTerminal is swapped in tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// IsAborted reports whether err comes from the user aborting a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}

// run shows p, or fails with hint when there is nobody to answer.
func run(p promptui.Prompt, hint string) (string, error) {
	if !isTerminal() {
		return "", fmt.Errorf("cannot prompt for %s: %w (%s)", strings.ToLower(fmt.Sprint(p.Label)), ErrNoTerminal, hint)
	}
	result, err := p.Run()
	if err != nil && IsAborted(err) {
		return "", ErrAborted
	}
	return result, err
}

// Confirm asks a yes/no question. The default answer is no.
func Confirm(label string) (bool, error) {
	_, err := run(promptui.Prompt{Label: label, IsConfirm: true}, "use --force")
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		// "n" or an empty answer
		return false, nil
	default:
		return false, err
	}
}

// ConfirmWithForce skips the question when force is set.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label)
}

// InputRequired reads a non-empty value.
func InputRequired(label string) (string, error) {
	return run(promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}, "pass it as a flag")
}
