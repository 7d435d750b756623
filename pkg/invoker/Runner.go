// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Runner runs a command to completion and returns its exit code.
// A non-zero exit code is not an error.
type Runner interface {
	Run(ctx context.Context, command *Command, stdout io.Writer, stderr io.Writer) (int, error)
}

// ExecRunner runs commands as child processes.  Cancelling the context kills the process.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, command *Command, stdout io.Writer, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, command.Path, command.Args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	if ctx.Err() != nil {
		return -1, fmt.Errorf("error running %q: %w", command.Path, ctx.Err())
	}
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return exitError.ExitCode(), nil
		}
		return -1, fmt.Errorf("error running %q: %w", command.Path, err)
	}
	return 0, nil
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}
