package tools

import (
	"runtime"
	"sort"
)

var toolDefinitions = map[string]ToolDefinition{
	"conda": {
		Name:           "conda",
		MinimumVersion: "4.8",
		Required:       true,
		Candidates: []string{
			executableName("conda"),
			executableName("mamba"),
			executableName("micromamba"),
		},
		VersionSwitch: "--version",
	},
	"python": {
		Name:     "python",
		Required: false,
		Candidates: []string{
			executableName("python3"),
			executableName("python"),
		},
		VersionSwitch: "--version",
	},
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

// KnownTools returns the list of probed tool names.
func KnownTools() []string {
	names := make([]string, 0, len(toolDefinitions))
	for name := range toolDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the tool definition for the provided name.
func Definition(name string) (ToolDefinition, bool) {
	def, ok := toolDefinitions[name]
	return def, ok
}
