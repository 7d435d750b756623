// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package invoker

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookPathShell(t *testing.T) string {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh is not available")
	}
	return sh
}

func TestExecRunner(t *testing.T) {
	sh := lookPathShell(t)
	stdout := &bytes.Buffer{}
	code, err := NewExecRunner().Run(context.Background(), &Command{Path: sh, Args: []string{"-c", "echo connected"}}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "connected\n", stdout.String())
}

func TestExecRunnerExitCode(t *testing.T) {
	sh := lookPathShell(t)
	stderr := &bytes.Buffer{}
	code, err := NewExecRunner().Run(context.Background(), &Command{Path: sh, Args: []string{"-c", "echo failed >&2; exit 105"}}, &bytes.Buffer{}, stderr)
	require.NoError(t, err)
	assert.Equal(t, 105, code)
	assert.Equal(t, "failed\n", stderr.String())
}

func TestExecRunnerNotFound(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), &Command{Path: "/nonexistent/wsadmin.sh"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestExecRunnerCancel(t *testing.T) {
	sh := lookPathShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := NewExecRunner().Run(ctx, &Command{Path: sh, Args: []string{"-c", "exec sleep 10"}}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
