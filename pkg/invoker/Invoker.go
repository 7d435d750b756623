// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package invoker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid"
	"github.com/spf13/afero"

	"github.com/deptofdefense/adminscript/pkg/dialect"
	"github.com/deptofdefense/adminscript/pkg/log"
)

// Invoker writes scripts to temporary files and runs them with the vendor interpreter.
// Every run is attempted exactly once.
type Invoker struct {
	config *Config
	fs     afero.Fs
	runner Runner
	logger log.Logger
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

func (i *Invoker) tempDir() string {
	if len(i.config.TempDir) > 0 {
		return i.config.TempDir
	}
	return os.TempDir()
}

func (i *Invoker) scriptPath() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("error creating script name: %w", err)
	}
	return filepath.Join(i.tempDir(), "adminscript-"+id.String()+".py"), nil
}

func (i *Invoker) writeScript(p string, script string) error {
	dir := filepath.Dir(p)
	if err := i.fs.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("error creating script directory %q: %w", dir, err)
	}
	if err := afero.WriteFile(i.fs, p, []byte(script), 0600); err != nil {
		return fmt.Errorf("error writing script to %q: %w", p, err)
	}
	return nil
}

// Run writes the script and runs it with the interpreter of the dialect.
// If the interpreter exits with a non-zero code, the result is returned together with an *ExitError.
// A dry run writes and keeps the script without running it.
func (i *Invoker) Run(ctx context.Context, d dialect.Dialect, script string) (*Result, error) {
	p, err := i.scriptPath()
	if err != nil {
		return nil, err
	}

	command, err := BuildCommand(i.config, d, p)
	if err != nil {
		return nil, err
	}

	if err := i.writeScript(p, script); err != nil {
		return nil, err
	}

	keep := i.config.KeepScript || i.config.DryRun
	if !keep {
		defer func() {
			if err := i.fs.Remove(p); err != nil {
				_ = i.logger.Log("Error removing script", map[string]interface{}{
					"path":  p,
					"error": err.Error(),
				})
			}
		}()
	}

	result := &Result{
		Command: command,
		DryRun:  i.config.DryRun,
	}
	if keep {
		result.ScriptPath = p
	}

	_ = i.logger.Log("Invoking interpreter", map[string]interface{}{
		"dialect": d.String(),
		"command": command.Redacted(),
		"script":  p,
		"dry_run": i.config.DryRun,
	})

	if i.config.DryRun {
		return result, nil
	}

	if i.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.config.Timeout)
		defer cancel()
	}

	start := i.now()
	code, err := i.runner.Run(ctx, command, i.stdout, i.stderr)
	result.Duration = i.now().Sub(start)
	result.ExitCode = code
	if err != nil {
		return nil, fmt.Errorf("error invoking interpreter: %w", err)
	}

	_ = i.logger.Log("Interpreter exited", map[string]interface{}{
		"dialect":   d.String(),
		"exit_code": code,
		"duration":  result.Duration.String(),
	})

	if code != 0 {
		return result, &ExitError{Code: code}
	}
	return result, nil
}

func New(config *Config, fs afero.Fs, runner Runner, logger log.Logger, stdout io.Writer, stderr io.Writer) *Invoker {
	return &Invoker{
		config: config,
		fs:     fs,
		runner: runner,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
	}
}
