package tools

import "testing"

func TestNormalizeVersion(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"conda 23.7.4", "23.7.4"},
		{"mamba 1.5.8", "1.5.8"},
		{"Python 3.9.18", "3.9.18"},
		{"24.1", "24.1"},
		{"4", "4"},
		{"no digits here", "no digits here"},
	}
	for _, tc := range cases {
		if got := normalizeVersion(tc.input); got != tc.want {
			t.Fatalf("normalizeVersion(%q): expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("conda 23.7.4\nwarning: something"); got != "conda 23.7.4" {
		t.Fatalf("expected first line only, got %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestMeetsMinimum(t *testing.T) {
	cases := []struct {
		version string
		minimum string
		want    bool
	}{
		{"4.8", "4.8", true},
		{"4.8.1", "4.8", true},
		{"23.7.4", "4.8", true},
		{"4.7.12", "4.8", false},
		{"4.8", "4.8.1", false},
		{"4.8", "", true},
		{"", "4.8", false},
		{"4", "4.0.0", true},
	}
	for _, tc := range cases {
		if got := meetsMinimum(tc.version, tc.minimum); got != tc.want {
			t.Fatalf("meetsMinimum(%q, %q): expected %v, got %v", tc.version, tc.minimum, tc.want, got)
		}
	}
}

func TestNumericParts(t *testing.T) {
	parts := numericParts("4.8.1")
	want := []int{4, 8, 1}
	if len(parts) != len(want) {
		t.Fatalf("expected %v, got %v", want, parts)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, parts)
		}
	}

	if parts := numericParts("v1.5rc2"); len(parts) != 3 {
		t.Fatalf("non-numeric separators should split: %v", parts)
	}
}
