package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"
)

// lookPath is swapped out by tests.
var lookPath = exec.LookPath

// Detect returns the status of each known tool, updating the resolved-path
// manifest when new information is discovered.
func Detect(ctx context.Context) ([]Status, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	manifest, err := loadManifest()
	if err != nil {
		return nil, err
	}

	var statuses []Status
	changed := false

	for _, name := range KnownTools() {
		def, _ := Definition(name)
		status, entry, dirty := detectOne(ctx, def, manifest.Entries[name])
		statuses = append(statuses, status)
		if dirty {
			if entry.Tool == "" {
				delete(manifest.Entries, name)
			} else {
				if manifest.Entries == nil {
					manifest.Entries = map[string]ManifestEntry{}
				}
				manifest.Entries[name] = entry
			}
			changed = true
		}
	}

	if changed {
		if err := saveManifest(manifest); err != nil {
			return nil, err
		}
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Tool < statuses[j].Tool })
	return statuses, nil
}

// Resolve returns the status for a single tool.
func Resolve(ctx context.Context, name string) (Status, error) {
	def, ok := Definition(name)
	if !ok {
		return Status{}, fmt.Errorf("unknown tool %q", name)
	}
	statuses, err := Detect(ctx)
	if err != nil {
		return Status{}, err
	}
	for _, st := range statuses {
		if st.Tool == def.Name {
			return st, nil
		}
	}
	return Status{}, fmt.Errorf("tool %q not probed", name)
}

func detectOne(ctx context.Context, def ToolDefinition, entry ManifestEntry) (Status, ManifestEntry, bool) {
	minimum := minimumFor(ctx, def)
	status := Status{Tool: def.Name, Minimum: minimum, Required: def.Required}

	// Validate the manifest entry if present.
	if entry.Tool != "" {
		if _, err := os.Stat(entry.Path); err == nil {
			version, verr := readVersion(ctx, def, entry.Path)
			if verr == nil {
				fill(&status, entry.Executable, entry.Path, version, minimum)
				return status, entry, false
			}
			status.Notes = append(status.Notes, fmt.Sprintf("manifest entry invalid: %v", verr))
		}
	}

	// Walk the candidate executables on PATH.
	for _, candidate := range def.Candidates {
		path, err := lookPath(candidate)
		if err != nil {
			continue
		}
		version, verr := readVersion(ctx, def, path)
		if verr != nil {
			status.Notes = append(status.Notes, verr.Error())
			continue
		}

		fill(&status, candidate, path, version, minimum)
		newEntry := ManifestEntry{
			Tool:       def.Name,
			Executable: candidate,
			Version:    version,
			Path:       path,
			ProbedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		dirty := entry.Tool == "" || entry.Path != path || entry.Version != version
		return status, newEntry, dirty
	}

	status.Error = fmt.Sprintf("none of %v found in PATH", def.Candidates)
	status.Hints = installHints(def.Name)
	if entry.Tool != "" {
		return status, ManifestEntry{}, true
	}
	return status, ManifestEntry{}, false
}

func fill(status *Status, executable, path, version, minimum string) {
	status.Executable = executable
	status.Path = path
	status.Version = version
	status.Found = true
	status.Satisfied = meetsMinimum(version, minimum)
	if !status.Satisfied {
		status.Error = fmt.Sprintf("version %s below minimum %s", version, minimum)
		status.Hints = installHints(status.Tool)
	}
}
