// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package template

import (
	"fmt"

	"github.com/spf13/afero"
)

// ParseFS reads and parses the template at path from the given file system.
func ParseFS(fs afero.Fs, name string, path string) (Template, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading template from %q: %w", path, err)
	}
	t, err := Parse(name, string(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing template from %q: %w", path, err)
	}
	return t, nil
}

func ParseFile(name string, path string) (Template, error) {
	return ParseFS(afero.NewOsFs(), name, path)
}
