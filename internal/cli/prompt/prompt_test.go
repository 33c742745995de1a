package prompt

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline", "s3cret\n", "s3cret"},
		{"crlf", "s3cret\r\n", "s3cret"},
		{"no newline", "s3cret", "s3cret"},
		{"only first line", "first\nsecond\n", "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSecret(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSecretEmpty(t *testing.T) {
	_, err := ReadSecret(strings.NewReader("\n"))
	assert.Error(t, err)
}

func TestConfirmWithForce(t *testing.T) {
	ok, err := ConfirmWithForce("Delete context prod?", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAborted(t *testing.T) {
	assert.True(t, IsAborted(ErrAborted))
	assert.True(t, IsAborted(promptui.ErrInterrupt))
	assert.True(t, IsAborted(fmt.Errorf("login: %w", promptui.ErrEOF)))
	assert.False(t, IsAborted(promptui.ErrAbort), "answering no is not an abort")
	assert.False(t, IsAborted(errors.New("boom")))
}

func TestPromptsNeedTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, err := Password("Password")
	require.ErrorIs(t, err, ErrNoTerminal)
	assert.Contains(t, err.Error(), "cannot prompt for password")
	assert.Contains(t, err.Error(), "--password-stdin")

	_, err = InputRequired("Username")
	require.ErrorIs(t, err, ErrNoTerminal)

	ok, err := Confirm("Delete context 'prod'?")
	require.ErrorIs(t, err, ErrNoTerminal)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "--force")
}
