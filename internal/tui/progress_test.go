package tui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestRowUpdateMsg(t *testing.T) {
	m := NewProgressModel("condactl up", []Column{
		{Header: "STEP", Width: 12},
		{Header: "STATUS", Width: 10},
		{Header: "DETAIL", Width: 20},
	})
	m.AddRow("env", []string{"FER_ENV", "pending", ""})
	m.AddRow("tensorflow", []string{"tensorflow", "pending", ""})

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "env",
		Fields: map[string]string{"STATUS": "created", "DETAIL": "python=3.9"},
	})
	m = updated.(ProgressModel)

	if m.rows[0].Fields[1] != "created" {
		t.Errorf("expected STATUS=created, got %q", m.rows[0].Fields[1])
	}
	if m.rows[0].Fields[2] != "python=3.9" {
		t.Errorf("expected DETAIL=python=3.9, got %q", m.rows[0].Fields[2])
	}
	// Second row unchanged.
	if m.rows[1].Fields[1] != "pending" {
		t.Errorf("expected row 2 STATUS=pending, got %q", m.rows[1].Fields[1])
	}
}

func TestRowUpdateMsg_UnknownKey(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("env", []string{"pending"})

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "missing",
		Fields: map[string]string{"STATUS": "installed"},
	})
	m = updated.(ProgressModel)

	if m.rows[0].Fields[0] != "pending" {
		t.Errorf("expected STATUS unchanged, got %q", m.rows[0].Fields[0])
	}
}

func TestWorkDoneMsg(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})

	updated, cmd := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after WorkDoneMsg")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestErrorMsg(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})

	updated, cmd := m.Update(ErrorMsg{Err: errors.New("conda exploded")})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ErrorMsg")
	}
	if m.Err() == nil {
		t.Error("expected Err() to be non-nil")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if !strings.Contains(m.View(), "conda exploded") {
		t.Errorf("error view should show the error, got %q", m.View())
	}
}

func TestView(t *testing.T) {
	m := NewProgressModel("condactl up", []Column{
		{Header: "STEP", Width: 12},
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("env", []string{"FER_ENV", "pending"})
	m.AddRow("numpy", []string{"numpy", "installed"})

	view := m.View()
	for _, want := range []string{"condactl up", "STEP", "STATUS", "FER_ENV", "numpy", "installed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "Installing 1/2") {
		t.Errorf("footer should count processed rows:\n%s", view)
	}
}

func TestProgressCounts(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STEP", Width: 10},
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("a", []string{"a", "pending"})
	m.AddRow("b", []string{"b", "installing"})
	m.AddRow("c", []string{"c", "failed"})

	processed, failed, total := m.progressCounts()
	if processed != 2 || total != 3 {
		t.Errorf("expected 2/3 processed, got %d/%d", processed, total)
	}
	if failed != 1 {
		t.Errorf("expected 1 failed, got %d", failed)
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	cases := []struct {
		value string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is far too long", 10, "this is..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := TruncateWithEllipsis(tc.value, tc.max); got != tc.want {
			t.Errorf("TruncateWithEllipsis(%q, %d): expected %q, got %q", tc.value, tc.max, tc.want, got)
		}
	}
}

func TestMarqueeText(t *testing.T) {
	text := "deepface==0.0.95"
	width := 8

	frame0 := marqueeText(text, width, 0)
	if len(frame0) != width {
		t.Fatalf("expected width %d, got %d", width, len(frame0))
	}
	if frame0 != text[:width] {
		t.Errorf("tick 0 should show the start, got %q", frame0)
	}

	frame1 := marqueeText(text, width, 1)
	if frame1 == frame0 {
		t.Error("consecutive ticks should scroll")
	}

	if got := marqueeText("fits", width, 3); got != "fits" {
		t.Errorf("short text passes through, got %q", got)
	}
}

func TestNonEmptyOrDash(t *testing.T) {
	if got := NonEmptyOrDash("  "); got != "-" {
		t.Errorf("expected dash, got %q", got)
	}
	if got := NonEmptyOrDash("value"); got != "value" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestDetectMode(t *testing.T) {
	var buf bytes.Buffer

	if got := DetectMode(&buf, false, true); got != ModeJSON {
		t.Errorf("json flag wins: got %v", got)
	}
	if got := DetectMode(&buf, true, false); got != ModePlain {
		t.Errorf("no-progress forces plain: got %v", got)
	}
	// A plain buffer is not a terminal.
	if got := DetectMode(&buf, false, false); got != ModePlain {
		t.Errorf("non-file writer should downgrade to plain: got %v", got)
	}

	t.Setenv("CI", "true")
	if got := DetectMode(os.Stdout, false, false); got != ModePlain {
		t.Errorf("CI runs get plain output: got %v", got)
	}
}
