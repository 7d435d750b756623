// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package invoker

import (
	"time"
)

// Result describes one interpreter run.
type Result struct {
	Command  *Command
	ExitCode int
	Duration time.Duration
	// ScriptPath is set only when the script is kept after the run, as with a dry run.
	ScriptPath string
	DryRun     bool
}
