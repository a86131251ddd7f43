package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the environment descriptor condactl reconciles against.
type Config struct {
	Version     int               `yaml:"version"`
	Environment EnvironmentConfig `yaml:"environment"`
	Channels    []string          `yaml:"channels"`
	Manifest    string            `yaml:"manifest,omitempty"`
	Packages    PackagesConfig    `yaml:"packages"`
	Tools       ToolsConfig       `yaml:"tools,omitempty"`
}

// EnvironmentConfig names the target environment and its interpreter.
type EnvironmentConfig struct {
	Name   string `yaml:"name"`
	Python string `yaml:"python"`
}

// PackagesConfig splits the dependency set into the conda-channel group and
// the pip group. The core group installs in one batched conda call; pip
// packages install one at a time.
type PackagesConfig struct {
	Core []Package `yaml:"core"`
	Pip  []Package `yaml:"pip"`
}

// ToolsConfig carries optional minimum-version overrides for probed tools.
type ToolsConfig struct {
	Minimums map[string]string `yaml:"minimums,omitempty"`
}

// Package is a dependency with an optional version constraint. In YAML it is
// either a bare scalar ("numpy", "deepface==0.0.95", "opencv=4.8") or a
// mapping with name and version keys.
type Package struct {
	Name    string
	Version string
}

// UnmarshalYAML accepts both the scalar and mapping forms.
func (p *Package) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		name, version := splitSpec(raw)
		p.Name = name
		p.Version = version
		return nil
	case yaml.MappingNode:
		var aux struct {
			Name    string `yaml:"name"`
			Version string `yaml:"version"`
		}
		if err := node.Decode(&aux); err != nil {
			return err
		}
		p.Name = strings.TrimSpace(aux.Name)
		p.Version = strings.TrimSpace(aux.Version)
		return nil
	default:
		return fmt.Errorf("line %d: package entry must be a string or mapping", node.Line)
	}
}

// MarshalYAML renders the compact scalar form.
func (p Package) MarshalYAML() (interface{}, error) {
	return p.CondaSpec(), nil
}

// CondaSpec returns the conda-style constraint (name=version).
func (p Package) CondaSpec() string {
	if p.Version == "" || p.Version == "*" {
		return p.Name
	}
	return p.Name + "=" + p.Version
}

// PipSpec returns the pip-style constraint (name==version).
func (p Package) PipSpec() string {
	if p.Version == "" || p.Version == "*" {
		return p.Name
	}
	return p.Name + "==" + p.Version
}

func splitSpec(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	for _, sep := range []string{"==", "="} {
		if idx := strings.Index(raw, sep); idx >= 0 {
			return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+len(sep):])
		}
	}
	return raw, ""
}

// Default returns the baseline descriptor: the FER demo stack.
func Default() Config {
	return Config{
		Version: 1,
		Environment: EnvironmentConfig{
			Name:   "FER_ENV",
			Python: "3.9",
		},
		Channels: []string{"conda-forge", "defaults"},
		Manifest: "environment.yml",
		Packages: PackagesConfig{
			Core: []Package{
				{Name: "numpy"},
				{Name: "opencv"},
				{Name: "matplotlib"},
				{Name: "pandas"},
				{Name: "seaborn"},
				{Name: "scikit-learn"},
			},
			Pip: []Package{
				{Name: "tensorflow"},
				{Name: "keras"},
				{Name: "deepface", Version: "0.0.95"},
				{Name: "mediapipe"},
				{Name: "streamlit"},
			},
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// PrimaryChannel returns the first configured channel, or empty when the
// install should go straight to conda's defaults.
func (c Config) PrimaryChannel() string {
	for _, ch := range c.Channels {
		if trimmed := strings.TrimSpace(ch); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ToolMinimums returns the configured minimum-version overrides.
func (c Config) ToolMinimums() map[string]string {
	return c.Tools.Minimums
}
