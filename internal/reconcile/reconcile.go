// Package reconcile drives a named conda environment toward the state a
// descriptor demands: probe tooling, reconcile existence, install packages
// (declarative manifest first, imperative fallback), then verify imports.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"strings"

	"condactl/internal/condaenv"
	"condactl/internal/config"
	"condactl/internal/paths"
	"condactl/internal/tools"
	"condactl/internal/verify"
)

// State names a stage of the reconciliation state machine.
type State string

const (
	StateProbeTools         State = "probe-tools"
	StateProbeExisting      State = "probe-existing"
	StateInstallDeclarative State = "install-declarative"
	StateInstallImperative  State = "install-imperative"
	StateVerify             State = "verify"
	StateDone               State = "done"
)

// InstallPath records which route produced the final environment.
type InstallPath string

const (
	PathExisting    InstallPath = "existing"
	PathDeclarative InstallPath = "declarative"
	PathImperative  InstallPath = "imperative"
)

// Descriptor is the reconciliation target. Name is stable across runs; the
// externally managed conda installation is the source of truth for whether
// the environment already exists.
type Descriptor struct {
	Name         string
	Python       string
	ManifestPath string
	Channels     []string
	Core         []config.Package
	Pip          []config.Package
}

// Options modify a single reconciliation run.
type Options struct {
	ForceRecreate    bool
	SkipVerification bool
	AssumeYes        bool
}

// Result carries everything a run produced. Outcomes list every non-fatal
// install failure; the report is the read-only verification summary.
type Result struct {
	Report    verify.Report
	Outcomes  []condaenv.Outcome
	Path      InstallPath
	Recreated bool
}

// Client is the subset of the conda client the reconciler drives.
type Client interface {
	EnvExists(ctx context.Context, name string) (bool, error)
	RemoveEnv(ctx context.Context, name string) error
	CreateFromFile(ctx context.Context, manifestPath string) error
	CreateEnv(ctx context.Context, name, pythonVersion string) error
	InstallPackages(ctx context.Context, name, channel string, specs []string) error
	PipInstall(ctx context.Context, name, spec string) error
	RunPython(ctx context.Context, name, code string) (string, error)
}

// Event reports progress for a single step so the CLI can drive its
// progress table. Keys are stable: "env", "manifest", "core", or a pip
// package name.
type Event struct {
	Key    string
	Status string
	Detail string
}

// Reconciler owns the collaborators for a run. Confirm is the pluggable
// interactive prompt; tests and --yes inject fixed answers. The conda client
// is built by NewClient only after ProbeTools succeeds, so a missing manager
// short-circuits before any conda invocation.
type Reconciler struct {
	Detect    func(ctx context.Context) ([]tools.Status, error)
	NewClient func(condaPath string) (Client, error)
	Confirm   func(prompt string) bool
	Logger    condaenv.Logger

	// LogOutput, when set, receives a copy of every external command's
	// output (the default client tees it into the run log).
	LogOutput io.Writer

	// OnState and OnEvent are optional progress callbacks.
	OnState func(state State)
	OnEvent func(ev Event)

	client Client

	// fileExists is swapped out by tests.
	fileExists func(path string) (bool, error)
}

// New returns a reconciler with default collaborators.
func New(logger condaenv.Logger) *Reconciler {
	r := &Reconciler{
		Detect:  tools.Detect,
		Confirm: func(string) bool { return false },
		Logger:  logger,
	}
	r.NewClient = func(condaPath string) (Client, error) {
		client, err := condaenv.NewClient(condaPath, nil, logger)
		if err != nil {
			return nil, err
		}
		if r.LogOutput != nil {
			client.SetLogOutput(r.LogOutput)
		}
		return client, nil
	}
	return r
}

func (r *Reconciler) logf(format string, v ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, v...)
	}
}

func (r *Reconciler) transition(state State) {
	r.logf("state: %s", state)
	if r.OnState != nil {
		r.OnState(state)
	}
}

func (r *Reconciler) event(key, status, detail string) {
	if r.OnEvent != nil {
		r.OnEvent(Event{Key: key, Status: status, Detail: detail})
	}
}

func (r *Reconciler) statFile(path string) (bool, error) {
	if r.fileExists != nil {
		return r.fileExists(path)
	}
	return paths.FileExists(path)
}

// ProbeTools verifies prerequisite tooling. It is also run standalone via
// Reconcile, and fails fatally only when the environment manager is absent;
// a missing system python is a warning because creating the environment will
// provision one.
func (r *Reconciler) ProbeTools(ctx context.Context) ([]tools.Status, error) {
	r.transition(StateProbeTools)

	statuses, err := r.Detect(ctx)
	if err != nil {
		return nil, fatal(StateProbeTools, "tool detection failed", nil, err)
	}

	condaPath := ""
	for _, st := range statuses {
		switch {
		case st.Tool == "conda" && (!st.Found || !st.Satisfied):
			reason := "conda is not installed"
			if st.Found {
				reason = st.Error
			}
			return statuses, fatal(StateProbeTools, reason, st.Hints, nil)
		case st.Tool == "conda":
			condaPath = st.Path
		case st.Tool == "python" && !st.Found:
			r.logf("python not found on PATH; the environment will provide its own interpreter")
		}
	}

	if r.client == nil {
		client, err := r.NewClient(condaPath)
		if err != nil {
			return statuses, fatal(StateProbeTools, "could not initialize conda client", nil, err)
		}
		r.client = client
	}
	return statuses, nil
}

// Reconcile runs the full state machine and returns the verification report.
// Only fatal preconditions produce a non-nil error.
func (r *Reconciler) Reconcile(ctx context.Context, desc Descriptor, opts Options) (Result, error) {
	result := Result{}

	if strings.TrimSpace(desc.Name) == "" {
		return result, fatal(StateProbeTools, "environment name is empty", nil, nil)
	}

	if _, err := r.ProbeTools(ctx); err != nil {
		return result, err
	}

	proceed, recreated, err := r.probeExisting(ctx, desc, opts)
	if err != nil {
		return result, err
	}
	result.Recreated = recreated

	if !proceed {
		// Operator declined recreation: the existing environment is treated
		// as satisfactory and goes straight to verification.
		result.Path = PathExisting
		result.Report = r.runVerify(ctx, desc, opts)
		r.transition(StateDone)
		return result, nil
	}

	path, outcomes, err := r.install(ctx, desc)
	result.Outcomes = outcomes
	if err != nil {
		return result, err
	}
	result.Path = path

	result.Report = r.runVerify(ctx, desc, opts)
	r.transition(StateDone)
	return result, nil
}

// probeExisting returns proceed=false when an existing environment should be
// left untouched.
func (r *Reconciler) probeExisting(ctx context.Context, desc Descriptor, opts Options) (proceed, recreated bool, err error) {
	r.transition(StateProbeExisting)

	exists, err := r.client.EnvExists(ctx, desc.Name)
	if err != nil {
		return false, false, fatal(StateProbeExisting, "could not list conda environments", nil, err)
	}
	if !exists {
		r.logf("environment %s not found; will create", desc.Name)
		return true, false, nil
	}

	remove := opts.ForceRecreate
	if !remove {
		if opts.AssumeYes {
			remove = true
		} else {
			remove = r.Confirm(fmt.Sprintf("Environment %q already exists. Remove and recreate it?", desc.Name))
		}
	}
	if !remove {
		r.logf("keeping existing environment %s", desc.Name)
		return false, false, nil
	}

	r.logf("removing existing environment %s", desc.Name)
	r.event("env", "removing", "")
	if err := r.client.RemoveEnv(ctx, desc.Name); err != nil {
		return false, false, fatal(StateProbeExisting, fmt.Sprintf("failed to remove environment %q", desc.Name), nil, err)
	}
	return true, true, nil
}

// install tries the declarative manifest first and falls back to the
// imperative sequence. The fallback dispatch runs off Outcome tags.
func (r *Reconciler) install(ctx context.Context, desc Descriptor) (InstallPath, []condaenv.Outcome, error) {
	if !r.haveManifest(desc) {
		outcomes, err := r.installImperative(ctx, desc)
		if err != nil {
			return "", outcomes, err
		}
		return PathImperative, outcomes, nil
	}

	outcome := r.installDeclarative(ctx, desc)
	if outcome.Kind == condaenv.OutcomeSuccess {
		return PathDeclarative, nil, nil
	}

	// Declarative failure is non-fatal and always recoverable via fallback.
	r.logf("declarative install failed, falling back: %s", outcome.Reason)
	outcomes, err := r.installImperative(ctx, desc)
	if err != nil {
		return "", outcomes, err
	}
	return PathImperative, append([]condaenv.Outcome{outcome}, outcomes...), nil
}

func (r *Reconciler) haveManifest(desc Descriptor) bool {
	manifest := strings.TrimSpace(desc.ManifestPath)
	if manifest == "" {
		return false
	}
	exists, err := r.statFile(manifest)
	if err != nil || !exists {
		r.logf("manifest %s not found; using imperative install", manifest)
		return false
	}
	return true
}

func (r *Reconciler) installDeclarative(ctx context.Context, desc Descriptor) condaenv.Outcome {
	r.transition(StateInstallDeclarative)
	r.event("manifest", "installing", desc.ManifestPath)

	if err := r.client.CreateFromFile(ctx, desc.ManifestPath); err != nil {
		r.event("manifest", "failed", err.Error())
		return condaenv.DeclarativeFailed(err.Error())
	}

	r.event("manifest", "installed", "")
	return condaenv.Success()
}

func (r *Reconciler) installImperative(ctx context.Context, desc Descriptor) ([]condaenv.Outcome, error) {
	r.transition(StateInstallImperative)

	var outcomes []condaenv.Outcome

	r.event("env", "creating", "python="+desc.Python)
	if err := r.client.CreateEnv(ctx, desc.Name, desc.Python); err != nil {
		r.event("env", "failed", err.Error())
		return nil, fatal(StateInstallImperative, fmt.Sprintf("failed to create environment %q", desc.Name), nil, err)
	}
	r.event("env", "created", "")

	// Core group: one batched call via the primary channel, retried against
	// conda's defaults when the primary fails.
	if len(desc.Core) > 0 {
		specs := make([]string, 0, len(desc.Core))
		for _, p := range desc.Core {
			specs = append(specs, p.CondaSpec())
		}

		r.event("core", "installing", strings.Join(specs, " "))
		err := r.client.InstallPackages(ctx, desc.Name, primaryChannel(desc.Channels), specs)
		if err != nil {
			r.logf("core install via primary channel failed, retrying default channels: %v", err)
			err = r.client.InstallPackages(ctx, desc.Name, "", specs)
		}
		if err != nil {
			r.event("core", "failed", err.Error())
			outcomes = append(outcomes, condaenv.PackageFailed("core packages", err.Error()))
		} else {
			r.event("core", "installed", "")
		}
	}

	// Pip group: one package at a time, continuing past individual failures.
	for _, p := range desc.Pip {
		spec := p.PipSpec()
		r.event(p.Name, "installing", spec)
		if err := r.client.PipInstall(ctx, desc.Name, spec); err != nil {
			r.logf("pip install %s failed: %v", spec, err)
			r.event(p.Name, "failed", err.Error())
			outcomes = append(outcomes, condaenv.PackageFailed(p.Name, err.Error()))
			continue
		}
		r.event(p.Name, "installed", "")
	}

	return outcomes, nil
}

func (r *Reconciler) runVerify(ctx context.Context, desc Descriptor, opts Options) verify.Report {
	if opts.SkipVerification {
		return verify.Report{Environment: desc.Name, Skipped: true}
	}
	r.transition(StateVerify)
	return verify.Run(ctx, r.client, desc.Name)
}

func primaryChannel(channels []string) string {
	for _, ch := range channels {
		if trimmed := strings.TrimSpace(ch); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
