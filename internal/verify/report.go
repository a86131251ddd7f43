package verify

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// ProbeResult records a single import probe's outcome.
type ProbeResult struct {
	Import  string   `json:"import"`
	Display string   `json:"display"`
	OK      bool     `json:"ok"`
	Detail  string   `json:"detail,omitempty"`
	Hints   []string `json:"hints,omitempty"`
}

// Report is the end-of-run verification summary. It never affects control
// flow or the process exit code.
type Report struct {
	Environment string        `json:"environment"`
	Skipped     bool          `json:"skipped,omitempty"`
	Results     []ProbeResult `json:"results,omitempty"`
}

// AllOK reports whether every probe succeeded.
func (r Report) AllOK() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// FailureCount returns the number of failed probes.
func (r Report) FailureCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK {
			n++
		}
	}
	return n
}

// WriteJSON renders the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteText renders the human-readable verification summary.
func (r Report) WriteText(w io.Writer) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	fmt.Fprintln(w, bold.Render("VERIFICATION:")+" "+r.Environment)

	if r.Skipped {
		fmt.Fprintln(w, faint.Render("  skipped (--skip-verify)"))
		return
	}

	for _, res := range r.Results {
		if res.OK {
			line := green.Render("✓") + " " + bold.Render(res.Display)
			if res.Detail != "" {
				line += " v" + res.Detail
			}
			fmt.Fprintln(w, "  "+line)
			continue
		}

		fmt.Fprintln(w, "  "+red.Render("✗")+" "+bold.Render(res.Display))
		if res.Detail != "" {
			fmt.Fprintln(w, faint.Render("    "+res.Detail))
		}
		for _, hint := range res.Hints {
			fmt.Fprintln(w, faint.Render("    hint: "+hint))
		}
	}

	if !r.AllOK() {
		fmt.Fprintln(w, faint.Render(fmt.Sprintf("  %d of %d probes failed", r.FailureCount(), len(r.Results))))
	}
}
