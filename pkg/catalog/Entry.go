// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package catalog

import (
	"github.com/deptofdefense/adminscript/pkg/dialect"
)

// Entry describes one named template.
type Entry struct {
	Name    string          `json:"name"`
	Dialect dialect.Dialect `json:"dialect"`
	Builtin bool            `json:"builtin"`
}
