package tools

import (
	"context"
	"testing"
)

func TestMinimumForDefaults(t *testing.T) {
	def, ok := Definition("conda")
	if !ok {
		t.Fatal("conda definition missing")
	}
	if got := minimumFor(context.Background(), def); got != "4.8" {
		t.Fatalf("expected built-in minimum 4.8, got %q", got)
	}
}

func TestMinimumForOverride(t *testing.T) {
	def, _ := Definition("conda")

	ctx := WithMinimums(context.Background(), map[string]string{"conda": "23.1"})
	if got := minimumFor(ctx, def); got != "23.1" {
		t.Fatalf("expected override 23.1, got %q", got)
	}

	// Overrides below the built-in floor are ignored.
	ctx = WithMinimums(context.Background(), map[string]string{"conda": "3.0"})
	if got := minimumFor(ctx, def); got != "4.8" {
		t.Fatalf("expected floor 4.8, got %q", got)
	}
}

func TestWithMinimumsNormalizesNames(t *testing.T) {
	ctx := WithMinimums(context.Background(), map[string]string{"CONDA": " 23.1 "})
	if got := minimumOverride(ctx, "conda"); got != "23.1" {
		t.Fatalf("expected case-insensitive trimmed override, got %q", got)
	}
}

func TestWithMinimumsEmptyIsNoop(t *testing.T) {
	base := context.Background()
	if ctx := WithMinimums(base, nil); ctx != base {
		t.Fatal("nil minimums should return the context unchanged")
	}
	if ctx := WithMinimums(base, map[string]string{"conda": "  "}); ctx != base {
		t.Fatal("blank values should be dropped entirely")
	}
}

func TestKnownToolsStable(t *testing.T) {
	names := KnownTools()
	if len(names) != 2 || names[0] != "conda" || names[1] != "python" {
		t.Fatalf("unexpected tool list: %v", names)
	}
}

func TestInstallHints(t *testing.T) {
	if hints := installHints("conda"); len(hints) == 0 {
		t.Fatal("conda should always carry install hints")
	}
	if hints := installHints("python"); len(hints) == 0 {
		t.Fatal("python should explain that conda provisions the interpreter")
	}
	if hints := installHints("unknown"); hints != nil {
		t.Fatalf("unknown tools carry no hints: %v", hints)
	}
}
