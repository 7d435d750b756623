// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package catalog

import (
	"embed"
	iofs "io/fs"

	"github.com/deptofdefense/adminscript/pkg/fs"
)

//go:embed templates
var templates embed.FS

// Builtin returns the templates compiled into the binary.
func Builtin() fs.FileSystem {
	sub, err := iofs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return NewEmbeddedFileSystem(sub)
}
