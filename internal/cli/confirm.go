package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// askConfirm prompts for a yes/no answer on the given streams. Empty input
// and anything but y/yes declines, so a piped or closed stdin never mutates
// an existing environment.
func askConfirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
