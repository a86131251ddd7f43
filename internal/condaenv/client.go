package condaenv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Client assembles and runs conda commands against a single conda (or
// mamba/micromamba) binary. Every operation is synchronous; cancellation
// comes from the caller's context.
type Client struct {
	Conda  string
	Runner Runner
	Logger Logger

	// logOutput, when set, receives a copy of every command's stdio.
	logOutput io.Writer
}

// NewClient builds a client for the given conda binary path.
func NewClient(conda string, runner Runner, logger Logger) (*Client, error) {
	if strings.TrimSpace(conda) == "" {
		return nil, errors.New("conda path is empty")
	}
	if runner == nil {
		runner = CmdRunner{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Client{Conda: conda, Runner: runner, Logger: logger}, nil
}

// SetLogOutput configures a secondary writer for command output.
func (c *Client) SetLogOutput(w io.Writer) {
	if c == nil {
		return
	}
	c.logOutput = w
}

func (c *Client) logf(format string, v ...any) {
	if c == nil || c.Logger == nil {
		return
	}
	c.Logger.Printf(format, v...)
}

func (c *Client) run(ctx context.Context, args ...string) (RunResult, error) {
	c.logf("conda %s", strings.Join(args, " "))
	return c.Runner.Run(ctx, c.Conda, args, RunOptions{
		Stdout: c.logOutput,
		Stderr: c.logOutput,
	})
}

// EnvExists reports whether a named environment is registered with conda.
func (c *Client) EnvExists(ctx context.Context, name string) (bool, error) {
	res, err := c.run(ctx, "env", "list", "--json")
	if err != nil {
		return false, commandError("conda env list", err, res)
	}

	var listing struct {
		Envs []string `json:"envs"`
	}
	if err := json.Unmarshal(res.Stdout, &listing); err != nil {
		return false, fmt.Errorf("parse conda env list: %w", err)
	}

	for _, envPath := range listing.Envs {
		if filepath.Base(envPath) == name {
			return true, nil
		}
	}
	return false, nil
}

// RemoveEnv deletes a named environment and all of its packages.
func (c *Client) RemoveEnv(ctx context.Context, name string) error {
	res, err := c.run(ctx, "env", "remove", "-n", name, "-y")
	if err != nil {
		return commandError("conda env remove", err, res)
	}
	return nil
}

// CreateFromFile performs the declarative bulk install from a manifest.
func (c *Client) CreateFromFile(ctx context.Context, manifestPath string) error {
	res, err := c.run(ctx, "env", "create", "-f", manifestPath)
	if err != nil {
		return commandError("conda env create", err, res)
	}
	return nil
}

// CreateEnv creates a bare environment with the requested interpreter.
func (c *Client) CreateEnv(ctx context.Context, name, pythonVersion string) error {
	spec := "python"
	if strings.TrimSpace(pythonVersion) != "" {
		spec = "python=" + pythonVersion
	}
	res, err := c.run(ctx, "create", "-n", name, spec, "-y")
	if err != nil {
		return commandError("conda create", err, res)
	}
	return nil
}

// InstallPackages installs the given specs into the environment in one
// batched call, optionally through a specific channel.
func (c *Client) InstallPackages(ctx context.Context, name, channel string, specs []string) error {
	if len(specs) == 0 {
		return nil
	}
	args := []string{"install", "-n", name}
	if strings.TrimSpace(channel) != "" {
		args = append(args, "-c", channel)
	}
	args = append(args, specs...)
	args = append(args, "-y")

	res, err := c.run(ctx, args...)
	if err != nil {
		return commandError("conda install", err, res)
	}
	return nil
}

// PipInstall installs a single pip spec using the environment's own
// interpreter, so wheels land inside the environment.
func (c *Client) PipInstall(ctx context.Context, name, spec string) error {
	res, err := c.run(ctx, "run", "-n", name, "python", "-m", "pip", "install", spec)
	if err != nil {
		return commandError("pip install "+spec, err, res)
	}
	return nil
}

// RunPython executes a short python snippet inside the environment and
// returns its trimmed stdout.
func (c *Client) RunPython(ctx context.Context, name, code string) (string, error) {
	res, err := c.run(ctx, "run", "-n", name, "python", "-c", code)
	if err != nil {
		return "", commandError("python probe", err, res)
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// commandError folds the last non-empty stderr line into the error so the
// report carries the tool's actual complaint, not just an exit status.
func commandError(op string, err error, res RunResult) error {
	detail := lastLine(res.Stderr)
	if detail == "" {
		detail = lastLine(res.Stdout)
	}
	if detail == "" {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %s", op, err, detail)
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
