package tools

// Status captures the resolved state for a probed tool.
type Status struct {
	Tool       string   `json:"tool"`
	Executable string   `json:"executable,omitempty"`
	Version    string   `json:"version,omitempty"`
	Minimum    string   `json:"minimum,omitempty"`
	Path       string   `json:"path,omitempty"`
	Required   bool     `json:"required"`
	Found      bool     `json:"found"`
	Satisfied  bool     `json:"satisfied"`
	Error      string   `json:"error,omitempty"`
	Hints      []string `json:"hints,omitempty"`
	Notes      []string `json:"notes,omitempty"`
}

// ToolDefinition contains metadata required to probe a tool. Candidates are
// tried in order; the first executable found on PATH wins (conda accepts
// mamba or micromamba as a drop-in).
type ToolDefinition struct {
	Name           string
	MinimumVersion string
	Required       bool
	Candidates     []string
	VersionSwitch  string
}

// ManifestEntry records a previously resolved tool path so repeat runs skip
// the PATH walk. Entries are revalidated before use; the tool on disk stays
// authoritative.
type ManifestEntry struct {
	Tool       string `json:"tool"`
	Executable string `json:"executable"`
	Version    string `json:"version"`
	Path       string `json:"path"`
	ProbedAt   string `json:"probed_at,omitempty"`
}

// Manifest wraps persisted entries for quick lookup.
type Manifest struct {
	Entries map[string]ManifestEntry `json:"entries"`
}
