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

// Config describes where the vendor interpreters live and how they are invoked.
type Config struct {
	// JavaPath is the java executable used to start WLST.  Defaults to "java".
	JavaPath string
	// JavaOptions are passed to the JVM running WLST.
	JavaOptions []string
	// WeblogicHome is the WebLogic server directory containing server/lib/weblogic.jar.
	WeblogicHome string
	// WLSTPath is an explicit wlst.sh script, used instead of java when set.
	WLSTPath string

	// WebsphereHome is the WebSphere installation containing bin/wsadmin.sh.
	WebsphereHome string
	Profile       string
	// MinHeap and MaxHeap are the wsadmin JVM heap sizes in megabytes.  Zero omits the option.
	MinHeap int
	MaxHeap int
	// Offline runs wsadmin without connecting to a server.
	Offline  bool
	User     string
	Password string

	// TempDir is where scripts are written.  Defaults to the system temporary directory.
	TempDir    string
	KeepScript bool
	DryRun     bool
	// Timeout kills the interpreter after the given duration.  Zero means no timeout.
	Timeout time.Duration
}
