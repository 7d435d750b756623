// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package template

import (
	"io"
)

type Template interface {
	Name() string
	// Placeholders returns the sorted, unique names referenced by the template.
	Placeholders() []string
	Execute(w io.Writer, params Parameters) error
}
