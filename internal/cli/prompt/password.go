package prompt

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Password reads a masked password from the terminal.
func Password(label string) (string, error) {
	return run(promptui.Prompt{Label: label, Mask: '*'}, "use --password-stdin or OS_PASSWORD")
}

// ReadSecret reads one line from r, for secrets piped on stdin. The
// trailing newline is dropped.
func ReadSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", errors.New("no secret provided on stdin")
	}
	return secret, nil
}
