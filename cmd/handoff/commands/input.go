package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptSecret prints label to w and reads a line from the terminal
// without echo.
func promptSecret(w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// requirePassphrase returns the -p value, prompting when it was not given.
func requirePassphrase(w io.Writer) (string, error) {
	if passphrase != "" {
		return passphrase, nil
	}
	p, err := promptSecret(w, "Passphrase")
	if err != nil {
		return "", err
	}
	if p == "" {
		return "", fmt.Errorf("passphrase required (-p)")
	}
	passphrase = p
	return p, nil
}
