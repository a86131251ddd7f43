package condaenv

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error

	commands [][]string
}

func (f *fakeRunner) Run(_ context.Context, command string, args []string, _ RunOptions) (RunResult, error) {
	f.commands = append(f.commands, append([]string{command}, args...))
	return RunResult{Stdout: f.stdout, Stderr: f.stderr}, f.err
}

func newTestClient(t *testing.T, runner Runner) *Client {
	t.Helper()
	client, err := NewClient("/opt/conda/bin/conda", runner, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func (f *fakeRunner) lastCommand(t *testing.T) []string {
	t.Helper()
	if len(f.commands) == 0 {
		t.Fatal("no command was run")
	}
	return f.commands[len(f.commands)-1]
}

func TestNewClientRequiresPath(t *testing.T) {
	if _, err := NewClient("  ", nil, nil); err == nil {
		t.Fatal("expected an error for an empty conda path")
	}
}

func TestEnvExistsMatchesBaseName(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(`{"envs":["/opt/conda","/opt/conda/envs/FER_ENV","/opt/conda/envs/other"]}`)}
	client := newTestClient(t, runner)

	exists, err := client.EnvExists(context.Background(), "FER_ENV")
	if err != nil {
		t.Fatalf("EnvExists: %v", err)
	}
	if !exists {
		t.Fatal("FER_ENV is listed and should be found")
	}

	exists, err = client.EnvExists(context.Background(), "missing")
	if err != nil {
		t.Fatalf("EnvExists: %v", err)
	}
	if exists {
		t.Fatal("missing environment reported as present")
	}

	got := strings.Join(runner.lastCommand(t), " ")
	want := "/opt/conda/bin/conda env list --json"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEnvExistsRejectsPartialNameMatch(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(`{"envs":["/opt/conda/envs/FER_ENV_OLD"]}`)}
	client := newTestClient(t, runner)

	exists, err := client.EnvExists(context.Background(), "FER_ENV")
	if err != nil {
		t.Fatalf("EnvExists: %v", err)
	}
	if exists {
		t.Fatal("FER_ENV_OLD must not match FER_ENV")
	}
}

func TestEnvExistsBadJSON(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("not json")}
	client := newTestClient(t, runner)

	if _, err := client.EnvExists(context.Background(), "FER_ENV"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRemoveEnvArguments(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(t, runner)

	if err := client.RemoveEnv(context.Background(), "FER_ENV"); err != nil {
		t.Fatalf("RemoveEnv: %v", err)
	}
	got := strings.Join(runner.lastCommand(t), " ")
	want := "/opt/conda/bin/conda env remove -n FER_ENV -y"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCreateFromFileArguments(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(t, runner)

	if err := client.CreateFromFile(context.Background(), "environment.yml"); err != nil {
		t.Fatalf("CreateFromFile: %v", err)
	}
	got := strings.Join(runner.lastCommand(t), " ")
	want := "/opt/conda/bin/conda env create -f environment.yml"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCreateEnvPinsPython(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(t, runner)

	if err := client.CreateEnv(context.Background(), "FER_ENV", "3.9"); err != nil {
		t.Fatalf("CreateEnv: %v", err)
	}
	got := strings.Join(runner.lastCommand(t), " ")
	want := "/opt/conda/bin/conda create -n FER_ENV python=3.9 -y"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if err := client.CreateEnv(context.Background(), "FER_ENV", ""); err != nil {
		t.Fatalf("CreateEnv: %v", err)
	}
	got = strings.Join(runner.lastCommand(t), " ")
	if !strings.Contains(got, " python -y") {
		t.Fatalf("empty version should request an unpinned python: %q", got)
	}
}

func TestInstallPackagesChannelHandling(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(t, runner)

	specs := []string{"numpy", "opencv=4.8"}
	if err := client.InstallPackages(context.Background(), "FER_ENV", "conda-forge", specs); err != nil {
		t.Fatalf("InstallPackages: %v", err)
	}
	got := strings.Join(runner.lastCommand(t), " ")
	want := "/opt/conda/bin/conda install -n FER_ENV -c conda-forge numpy opencv=4.8 -y"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if err := client.InstallPackages(context.Background(), "FER_ENV", "", specs); err != nil {
		t.Fatalf("InstallPackages: %v", err)
	}
	got = strings.Join(runner.lastCommand(t), " ")
	if strings.Contains(got, " -c ") {
		t.Fatalf("empty channel must omit -c: %q", got)
	}
}

func TestInstallPackagesEmptySpecsIsNoop(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(t, runner)

	if err := client.InstallPackages(context.Background(), "FER_ENV", "conda-forge", nil); err != nil {
		t.Fatalf("InstallPackages: %v", err)
	}
	if len(runner.commands) != 0 {
		t.Fatalf("no command may run for an empty spec list: %v", runner.commands)
	}
}

func TestPipInstallUsesEnvironmentInterpreter(t *testing.T) {
	runner := &fakeRunner{}
	client := newTestClient(t, runner)

	if err := client.PipInstall(context.Background(), "FER_ENV", "deepface==0.0.95"); err != nil {
		t.Fatalf("PipInstall: %v", err)
	}
	got := strings.Join(runner.lastCommand(t), " ")
	want := "/opt/conda/bin/conda run -n FER_ENV python -m pip install deepface==0.0.95"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRunPythonTrimsOutput(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("2.15.0\n")}
	client := newTestClient(t, runner)

	out, err := client.RunPython(context.Background(), "FER_ENV", "import tensorflow as m; print(m.__version__)")
	if err != nil {
		t.Fatalf("RunPython: %v", err)
	}
	if out != "2.15.0" {
		t.Fatalf("expected trimmed stdout, got %q", out)
	}
}

func TestCommandErrorCarriesLastStderrLine(t *testing.T) {
	runner := &fakeRunner{
		err:    errors.New("exit status 1"),
		stderr: []byte("Collecting package metadata\nResolvePackageNotFound: \n  - mediapipe\n"),
	}
	client := newTestClient(t, runner)

	err := client.CreateFromFile(context.Background(), "environment.yml")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "- mediapipe") {
		t.Fatalf("error should carry the tool's last complaint: %v", err)
	}
}

func TestCommandErrorFallsBackToStdout(t *testing.T) {
	runner := &fakeRunner{
		err:    errors.New("exit status 1"),
		stdout: []byte("EnvironmentLocationNotFound\n"),
	}
	client := newTestClient(t, runner)

	err := client.RemoveEnv(context.Background(), "FER_ENV")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "EnvironmentLocationNotFound") {
		t.Fatalf("error should fall back to stdout detail: %v", err)
	}
}

func TestOutcomeString(t *testing.T) {
	cases := []struct {
		outcome Outcome
		want    string
	}{
		{Success(), "success"},
		{DeclarativeFailed("solver failed"), "declarative install failed: solver failed"},
		{PackageFailed("tensorflow", "no wheel"), "package tensorflow failed: no wheel"},
	}
	for _, tc := range cases {
		if got := tc.outcome.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
