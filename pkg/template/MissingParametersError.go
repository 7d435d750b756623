// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package template

import (
	"fmt"
	"strings"
)

// MissingParametersError is returned when a template references placeholders without a value.
type MissingParametersError struct {
	Template string
	Names    []string
}

func (e *MissingParametersError) Error() string {
	if len(e.Template) == 0 {
		return fmt.Sprintf("missing parameters: %s", strings.Join(e.Names, ", "))
	}
	return fmt.Sprintf("template %q is missing parameters: %s", e.Template, strings.Join(e.Names, ", "))
}
