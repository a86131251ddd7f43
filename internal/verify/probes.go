package verify

import (
	"context"
	"fmt"
	"strings"
)

// Probe names one expected importable module inside the target environment.
type Probe struct {
	Import  string
	Display string
}

// Probes is the fixed list of imports a healthy FER environment must
// resolve. Not user-configurable.
var Probes = []Probe{
	{Import: "cv2", Display: "opencv"},
	{Import: "numpy", Display: "numpy"},
	{Import: "deepface", Display: "deepface"},
	{Import: "mediapipe", Display: "mediapipe"},
	{Import: "streamlit", Display: "streamlit"},
	{Import: "tensorflow", Display: "tensorflow"},
	{Import: "keras", Display: "keras"},
}

// PythonRunner executes a python snippet inside a named environment.
type PythonRunner interface {
	RunPython(ctx context.Context, name, code string) (string, error)
}

// Run probes every expected import inside the environment. Probe failures
// are recorded, never raised: the report is diagnostic only.
func Run(ctx context.Context, runner PythonRunner, env string) Report {
	report := Report{Environment: env}
	for _, probe := range Probes {
		report.Results = append(report.Results, runOne(ctx, runner, env, probe))
	}
	return report
}

func runOne(ctx context.Context, runner PythonRunner, env string, probe Probe) ProbeResult {
	code := fmt.Sprintf("import %s as m; print(getattr(m, '__version__', ''))", probe.Import)
	out, err := runner.RunPython(ctx, env, code)
	if err != nil {
		detail := err.Error()
		return ProbeResult{
			Import:  probe.Import,
			Display: probe.Display,
			OK:      false,
			Detail:  detail,
			Hints:   failureHints(probe, detail),
		}
	}
	return ProbeResult{
		Import:  probe.Import,
		Display: probe.Display,
		OK:      true,
		Detail:  strings.TrimSpace(out),
	}
}

// failureHints maps well-known probe failures to actionable remediation.
func failureHints(probe Probe, detail string) []string {
	lower := strings.ToLower(detail)

	if strings.Contains(lower, "no module named") {
		return []string{fmt.Sprintf("package %s is not installed in the environment; re-run `condactl up`", probe.Display)}
	}

	var hints []string
	switch probe.Import {
	case "deepface":
		if strings.Contains(lower, "weights") || strings.Contains(lower, "download") || strings.Contains(lower, "corrupt") {
			hints = append(hints, "the cached model weights may be corrupt; remove ~/.deepface/weights and re-run")
		}
	case "tensorflow":
		if strings.Contains(lower, "illegal instruction") || strings.Contains(lower, "core dumped") {
			hints = append(hints, "this tensorflow build needs AVX support; on older CPUs install the tensorflow-cpu wheel instead")
		}
	case "cv2":
		if strings.Contains(lower, "libgl") || strings.Contains(lower, "shared libraries") {
			hints = append(hints, "a native library is missing; on Debian/Ubuntu install libgl1 (sudo apt install libgl1)")
		}
	case "mediapipe":
		if strings.Contains(lower, "no matching distribution") || strings.Contains(lower, "platform") {
			hints = append(hints, "no mediapipe wheel exists for this python/platform pair; pin python to 3.9 and retry")
		}
	}

	if strings.Contains(lower, "resolvepackagenotfound") || strings.Contains(lower, "packagesnotfounderror") {
		hints = append(hints, "the configured channel could not resolve the package; check the channels list in condactl.yaml")
	}
	return hints
}
