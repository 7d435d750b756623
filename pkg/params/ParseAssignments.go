// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package params

import (
	"fmt"
	"strings"

	"github.com/deptofdefense/adminscript/pkg/template"
)

// ParseAssignments parses values in the format name=value.  The value may be empty and may contain "=".
func ParseAssignments(assignments []string) (template.Parameters, error) {
	params := template.Parameters{}
	for _, assignment := range assignments {
		i := strings.Index(assignment, "=")
		if i == -1 {
			return nil, fmt.Errorf("invalid parameter %q, expecting name=value", assignment)
		}
		name := strings.TrimSpace(assignment[:i])
		if len(name) == 0 {
			return nil, fmt.Errorf("invalid parameter %q, name is empty", assignment)
		}
		params[name] = assignment[i+1:]
	}
	return params, nil
}
