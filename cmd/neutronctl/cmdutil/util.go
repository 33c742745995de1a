package cmdutil

import (
	"fmt"
	"io"

	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/cli/prompt"
)

// PrintOutput prints data with p. For row formats it displays emptyMsg
// instead when isEmpty is set.
func PrintOutput(p *output.Printer, data any, isEmpty bool, emptyMsg string) error {
	if isEmpty && !p.Format().Structured() {
		_, _ = fmt.Fprintln(p.Writer(), emptyMsg)
		return nil
	}
	return p.Print(data)
}

// RunDeleteWithConfirmation prompts for confirmation (unless force is true) and runs deleteFn.
func RunDeleteWithConfirmation(p *output.Printer, resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s '%s'?", resourceType, name), force)
	if err != nil {
		return HandleAbort(p.Writer(), err)
	}
	if !confirmed {
		_, _ = fmt.Fprintln(p.Writer(), "Aborted.")
		return nil
	}

	if err := deleteFn(); err != nil {
		return err
	}

	p.Success(fmt.Sprintf("%s '%s' deleted successfully", resourceType, name))
	return nil
}

// HandleAbort checks if error is an abort (Ctrl+C) and prints a message.
// Returns nil for abort (user cancelled), otherwise returns the original error.
func HandleAbort(w io.Writer, err error) error {
	if prompt.IsAborted(err) {
		_, _ = fmt.Fprintln(w, "\nAborted.")
		return nil
	}
	return err
}

// BoolToYesNo converts a boolean to "yes" or "no" string.
func BoolToYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EmptyOr returns the value if not empty, otherwise returns the fallback.
func EmptyOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
