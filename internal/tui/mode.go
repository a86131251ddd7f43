package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how install progress should be rendered.
type OutputMode int

const (
	// ModeTUI drives the interactive bubbletea table.
	ModeTUI OutputMode = iota
	// ModePlain prints one line per step; used for pipes, CI, and dumb
	// terminals.
	ModePlain
	// ModeJSON emits structured output only, no progress rendering.
	ModeJSON
)

// DetectMode picks the output mode for a run. Explicit flags win; otherwise
// the interactive table is used only when out is a real terminal.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if noProgress || os.Getenv("CI") != "" {
		return ModePlain
	}
	if !isTerminal(out) {
		return ModePlain
	}
	return ModeTUI
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return false
		}
	}
	return true
}
