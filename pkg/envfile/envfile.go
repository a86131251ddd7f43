// Package envfile parses conda environment.yml manifests: an environment
// name, an ordered channel list, and a dependency list whose entries are bare
// package names, name=version pins, or a single nested pip sub-list.
//
// condactl parses the manifest only to report the effective install target;
// the declarative install hands the file to conda untouched, so conda stays
// authoritative for resolution.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is a parsed environment.yml.
type File struct {
	Name     string
	Channels []string
	// Conda holds the channel-installed dependency specs in file order.
	Conda []string
	// Pip holds the nested pip block's specs in file order.
	Pip []string
}

type rawFile struct {
	Name         string      `yaml:"name"`
	Channels     []string    `yaml:"channels"`
	Dependencies []yaml.Node `yaml:"dependencies"`
}

// Load reads and parses an environment.yml from disk.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses environment.yml contents.
func Parse(data []byte) (File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return File{}, errors.New("manifest is empty")
	}

	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("parse YAML: %w", err)
	}

	file := File{
		Name:     strings.TrimSpace(raw.Name),
		Channels: cleanStrings(raw.Channels),
	}

	var errs ValidationErrors
	if file.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "name is required"})
	}

	for _, node := range raw.Dependencies {
		switch node.Kind {
		case yaml.ScalarNode:
			var spec string
			if err := node.Decode(&spec); err != nil {
				errs = append(errs, ValidationError{Line: node.Line, Field: "dependencies", Message: err.Error()})
				continue
			}
			spec = strings.TrimSpace(spec)
			if spec == "" {
				errs = append(errs, ValidationError{Line: node.Line, Field: "dependencies", Message: "empty dependency"})
				continue
			}
			file.Conda = append(file.Conda, spec)

		case yaml.MappingNode:
			pip, perr := decodePipBlock(node)
			if perr != nil {
				errs = append(errs, ValidationError{Line: node.Line, Field: "dependencies", Message: perr.Error()})
				continue
			}
			if len(file.Pip) > 0 {
				errs = append(errs, ValidationError{Line: node.Line, Field: "pip", Message: "multiple pip blocks"})
				continue
			}
			file.Pip = pip

		default:
			errs = append(errs, ValidationError{
				Line:    node.Line,
				Field:   "dependencies",
				Message: "entry must be a package spec or a pip block",
			})
		}
	}

	if len(errs) > 0 {
		return file, errs
	}
	return file, nil
}

func decodePipBlock(node yaml.Node) ([]string, error) {
	var block struct {
		Pip []string `yaml:"pip"`
	}
	if err := node.Decode(&block); err != nil {
		return nil, err
	}
	if block.Pip == nil {
		return nil, errors.New("mapping entry is not a pip block")
	}
	pip := cleanStrings(block.Pip)
	if len(pip) == 0 {
		return nil, errors.New("pip block is empty")
	}
	return pip, nil
}

func cleanStrings(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
