package config

import (
	"fmt"
	"regexp"
	"strings"

	"condactl/internal/paths"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

var (
	envNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	pyVerRe   = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)
)

// ValidateStrict runs all strict validations against the config and returns
// structured results. configPath anchors relative manifest paths.
func (c Config) ValidateStrict(configPath string) []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateEnvironment()...)
	results = append(results, c.validateChannels()...)
	results = append(results, c.validatePackages()...)
	results = append(results, c.validateManifest(configPath)...)
	return results
}

func (c Config) validateEnvironment() []ValidationResult {
	var results []ValidationResult
	name := strings.TrimSpace(c.Environment.Name)
	if name == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: "environment.name is required",
		})
	} else if !envNameRe.MatchString(name) {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("environment.name %q contains characters conda will reject", name),
		})
	}

	python := strings.TrimSpace(c.Environment.Python)
	if python == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: "environment.python is required",
		})
	} else if !pyVerRe.MatchString(python) {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("environment.python %q is not a version string", python),
		})
	}
	return results
}

func (c Config) validateChannels() []ValidationResult {
	var results []ValidationResult
	for i, ch := range c.Channels {
		if strings.TrimSpace(ch) == "" {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("channels[%d] is empty", i),
			})
		}
	}
	if len(c.Channels) == 0 {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: "no channels configured; conda defaults will be used",
		})
	}
	return results
}

func (c Config) validatePackages() []ValidationResult {
	var results []ValidationResult
	check := func(group string, pkgs []Package) {
		seen := map[string]bool{}
		for i, p := range pkgs {
			name := strings.TrimSpace(p.Name)
			if name == "" {
				results = append(results, ValidationResult{
					Level:   "error",
					Message: fmt.Sprintf("packages.%s[%d] has no name", group, i),
				})
				continue
			}
			if seen[strings.ToLower(name)] {
				results = append(results, ValidationResult{
					Level:   "warning",
					Message: fmt.Sprintf("packages.%s lists %q more than once", group, name),
				})
			}
			seen[strings.ToLower(name)] = true
		}
	}
	check("core", c.Packages.Core)
	check("pip", c.Packages.Pip)

	if len(c.Packages.Core) == 0 && len(c.Packages.Pip) == 0 && strings.TrimSpace(c.Manifest) == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: "no manifest and no packages configured; nothing to install",
		})
	}
	return results
}

func (c Config) validateManifest(configPath string) []ValidationResult {
	manifest := strings.TrimSpace(c.Manifest)
	if manifest == "" {
		return nil
	}
	resolved := paths.ResolveRelative(configPath, manifest)
	exists, err := paths.FileExists(resolved)
	if err != nil {
		return []ValidationResult{{
			Level:   "warning",
			Message: fmt.Sprintf("manifest %q could not be checked: %v", manifest, err),
		}}
	}
	if !exists {
		return []ValidationResult{{
			Level:   "warning",
			Message: fmt.Sprintf("manifest %q not found; the imperative install path will be used", manifest),
		}}
	}
	return nil
}
