// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package invoker

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/deptofdefense/adminscript/pkg/dialect"
)

const (
	redacted = "********"
)

// Command is an interpreter command line.
type Command struct {
	Path string
	Args []string
}

// Redacted returns the command line with the value of any -password argument hidden.
func (c *Command) Redacted() []string {
	line := append([]string{c.Path}, c.Args...)
	for i := 1; i < len(line); i++ {
		if line[i-1] == "-password" {
			line[i] = redacted
		}
	}
	return line
}

func (c *Command) String() string {
	return strings.Join(c.Redacted(), " ")
}

// BuildCommand returns the command line that runs the script with the interpreter of the dialect.
func BuildCommand(config *Config, d dialect.Dialect, script string) (*Command, error) {
	switch d {
	case dialect.WLST:
		return buildWLSTCommand(config, script)
	case dialect.Wsadmin:
		return buildWsadminCommand(config, script)
	}
	return nil, fmt.Errorf("unknown dialect %q", d)
}

func buildWLSTCommand(config *Config, script string) (*Command, error) {
	if len(config.WLSTPath) > 0 {
		return &Command{Path: config.WLSTPath, Args: []string{script}}, nil
	}
	if len(config.WeblogicHome) == 0 {
		return nil, errors.New("the WebLogic home is required to run WLST scripts")
	}
	java := config.JavaPath
	if len(java) == 0 {
		java = "java"
	}
	args := []string{}
	args = append(args, config.JavaOptions...)
	args = append(args,
		"-cp",
		filepath.Join(config.WeblogicHome, "server", "lib", "weblogic.jar"),
		"weblogic.WLST",
		script,
	)
	return &Command{Path: java, Args: args}, nil
}

func buildWsadminCommand(config *Config, script string) (*Command, error) {
	if len(config.WebsphereHome) == 0 {
		return nil, errors.New("the WebSphere home is required to run wsadmin scripts")
	}
	executable := "wsadmin.sh"
	if runtime.GOOS == "windows" {
		executable = "wsadmin.bat"
	}
	args := []string{"-lang", "jython"}
	if len(config.Profile) > 0 {
		args = append(args, "-profileName", config.Profile)
	}
	args = append(args, "-f", script)
	if config.MinHeap > 0 {
		args = append(args, "-javaoption", fmt.Sprintf("-Xms%dm", config.MinHeap))
	}
	if config.MaxHeap > 0 {
		args = append(args, "-javaoption", fmt.Sprintf("-Xmx%dm", config.MaxHeap))
	}
	if config.Offline {
		args = append(args, "-conntype", "NONE")
	}
	if len(config.User) > 0 {
		args = append(args, "-user", config.User, "-password", config.Password)
	}
	return &Command{
		Path: filepath.Join(config.WebsphereHome, "bin", executable),
		Args: args,
	}, nil
}
