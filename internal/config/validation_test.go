package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func levelCount(results []ValidationResult, level string) int {
	n := 0
	for _, r := range results {
		if r.Level == level {
			n++
		}
	}
	return n
}

func TestValidateEnvironmentNames(t *testing.T) {
	cases := []struct {
		name    string
		python  string
		errs    int
		mention string
	}{
		{"FER_ENV", "3.9", 0, ""},
		{"fer-env.2", "3.9.18", 0, ""},
		{"", "3.9", 1, "required"},
		{"bad name", "3.9", 1, "reject"},
		{"FER_ENV", "", 1, "required"},
		{"FER_ENV", "three.nine", 1, "version"},
	}

	for _, tc := range cases {
		cfg := Config{Environment: EnvironmentConfig{Name: tc.name, Python: tc.python}}
		results := cfg.validateEnvironment()
		if got := levelCount(results, "error"); got != tc.errs {
			t.Fatalf("(%q, %q): expected %d errors, got %v", tc.name, tc.python, tc.errs, results)
		}
		if tc.mention != "" {
			found := false
			for _, r := range results {
				if strings.Contains(r.Message, tc.mention) {
					found = true
				}
			}
			if !found {
				t.Fatalf("(%q, %q): no message mentions %q: %v", tc.name, tc.python, tc.mention, results)
			}
		}
	}
}

func TestValidateChannels(t *testing.T) {
	cfg := Config{Channels: []string{"conda-forge", "  "}}
	if got := levelCount(cfg.validateChannels(), "error"); got != 1 {
		t.Fatalf("expected one error for the blank channel, got %v", cfg.validateChannels())
	}

	empty := Config{}
	results := empty.validateChannels()
	if levelCount(results, "error") != 0 || levelCount(results, "warning") != 1 {
		t.Fatalf("no channels is a warning, not an error: %v", results)
	}
}

func TestValidatePackagesDuplicatesAndEmpties(t *testing.T) {
	cfg := Config{
		Packages: PackagesConfig{
			Core: []Package{{Name: "numpy"}, {Name: "NumPy"}},
			Pip:  []Package{{Name: ""}},
		},
	}
	results := cfg.validatePackages()
	if levelCount(results, "warning") != 1 {
		t.Fatalf("case-insensitive duplicate should warn: %v", results)
	}
	if levelCount(results, "error") != 1 {
		t.Fatalf("nameless package should error: %v", results)
	}
}

func TestValidatePackagesNothingToInstall(t *testing.T) {
	cfg := Config{}
	results := cfg.validatePackages()
	if levelCount(results, "error") != 1 {
		t.Fatalf("no manifest and no packages must error: %v", results)
	}

	withManifest := Config{Manifest: "environment.yml"}
	if got := levelCount(withManifest.validatePackages(), "error"); got != 0 {
		t.Fatalf("a manifest alone is a valid install source: %v", withManifest.validatePackages())
	}
}

func TestValidateManifestMissingIsWarning(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "condactl.yaml")

	cfg := Config{Manifest: "environment.yml"}
	results := cfg.validateManifest(cfgPath)
	if levelCount(results, "warning") != 1 || levelCount(results, "error") != 0 {
		t.Fatalf("missing manifest degrades to the imperative path, warning only: %v", results)
	}

	if err := os.WriteFile(filepath.Join(dir, "environment.yml"), []byte("name: FER_ENV\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if results := cfg.validateManifest(cfgPath); len(results) != 0 {
		t.Fatalf("present manifest should validate clean: %v", results)
	}
}

func TestValidateStrictAggregates(t *testing.T) {
	cfg := Default()
	cfg.Manifest = ""
	results := cfg.ValidateStrict(filepath.Join(t.TempDir(), "condactl.yaml"))
	if levelCount(results, "error") != 0 {
		t.Fatalf("the default descriptor must validate clean: %v", results)
	}

	broken := Config{}
	if levelCount(broken.ValidateStrict("condactl.yaml"), "error") == 0 {
		t.Fatal("an empty config should not validate")
	}
}
