package neutron

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Resource: "network", Name: "private"}
	assert.Equal(t, "Unable to find network with name 'private'", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
}

func TestAmbiguousErrorMessage(t *testing.T) {
	err := &AmbiguousError{Resource: "router", Name: "r1", IDs: []string{"a", "b"}}
	assert.Equal(t, "Multiple router matches found for name 'r1', use an ID to be more specific: a, b", err.Error())
	assert.True(t, IsAmbiguous(err))
	assert.False(t, IsNotFound(err))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil", nil, ExitOK},
		{"InvalidArgument", InvalidArgumentf("bad %s", "flag"), ExitArgument},
		{"WrappedInvalidArgument", fmt.Errorf("list: %w", InvalidArgumentf("bad")), ExitArgument},
		{"CobraUnknownFlag", errors.New("unknown flag: --nope"), ExitArgument},
		{"CobraUnknownCommand", errors.New(`unknown command "nope" for "neutronctl"`), ExitArgument},
		{"CobraRequiredFlag", errors.New(`required flag(s) "name" not set`), ExitArgument},
		{"CommandError", CommandErrorf("Must specify new values to update router"), ExitFailure},
		{"NotFound", &NotFoundError{Resource: "port", Name: "p"}, ExitFailure},
		{"Other", errors.New("connection refused"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestKindPredicates(t *testing.T) {
	cmdErr := CommandErrorf("nothing to do")
	assert.True(t, IsCommandError(cmdErr))
	assert.False(t, IsInvalidArgument(cmdErr))
	assert.Equal(t, "nothing to do", cmdErr.Error())
}
