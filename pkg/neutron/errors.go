package neutron

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the command framework. Concrete errors wrap one of
// these so callers can classify with errors.Is.
var (
	// ErrInvalidArgument reports malformed or mutually exclusive options.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports a name lookup with zero matches.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous reports a name lookup with more than one match.
	ErrAmbiguous = errors.New("ambiguous resource")

	// ErrCommand reports a transformation that cannot proceed, such as an
	// update that sets nothing.
	ErrCommand = errors.New("command error")
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitArgument = 2
)

// NotFoundError is returned when a name matches no resource.
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Unable to find %s with name '%s'", e.Resource, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AmbiguousError is returned when a name matches several resources.
type AmbiguousError struct {
	Resource string
	Name     string
	IDs      []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("Multiple %s matches found for name '%s', use an ID to be more specific: %s",
		e.Resource, e.Name, strings.Join(e.IDs, ", "))
}

func (e *AmbiguousError) Unwrap() error { return ErrAmbiguous }

// kindError attaches a kind to a plain message.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// InvalidArgumentf builds an ErrInvalidArgument error.
func InvalidArgumentf(format string, args ...any) error {
	return &kindError{kind: ErrInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// CommandErrorf builds an ErrCommand error.
func CommandErrorf(format string, args ...any) error {
	return &kindError{kind: ErrCommand, msg: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err is an argument error.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsNotFound reports whether err is a name-resolution miss.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAmbiguous reports whether err is a name-resolution collision.
func IsAmbiguous(err error) bool { return errors.Is(err, ErrAmbiguous) }

// IsCommandError reports whether err is a command error.
func IsCommandError(err error) bool { return errors.Is(err, ErrCommand) }

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsInvalidArgument(err), isUsageError(err):
		return ExitArgument
	default:
		return ExitFailure
	}
}

// isUsageError recognizes the flag and argument errors produced by cobra,
// which do not carry a type of their own.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"unknown flag",
		"unknown command",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"accepts ",
		"requires at least",
		"requires at most",
		"required flag(s)",
		"bad flag syntax",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
