package condaenv

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// RunOptions shapes one external command invocation. Stdout and Stderr, when
// set, receive a live copy of the command's output alongside the captured
// buffers; the CLI uses this to tee conda's output into the run log.
type RunOptions struct {
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult carries the captured output of a finished command.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes external commands. The conda client is written against
// this interface so tests substitute a fake instead of a real binary.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error)
}

// CmdRunner runs commands through os/exec. Stdin stays unattached so conda
// can never block on its own prompts; every mutating invocation passes an
// explicit -y instead.
type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = teeWriter(&stdoutBuf, opts.Stdout)
	cmd.Stderr = teeWriter(&stderrBuf, opts.Stderr)

	err := cmd.Run()
	return RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}, err
}

func teeWriter(buf *bytes.Buffer, extra io.Writer) io.Writer {
	if extra == nil {
		return buf
	}
	return io.MultiWriter(buf, extra)
}

var _ Runner = CmdRunner{}
