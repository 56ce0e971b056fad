package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadLine reads a single line from r with surrounding whitespace removed.
// A final line without a trailing newline is returned as-is; an empty
// reader returns io.EOF.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return strings.TrimSpace(line), nil
}
