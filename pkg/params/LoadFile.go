// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package params

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/deptofdefense/adminscript/pkg/template"
)

// LoadFile reads a parameter file, choosing the format by file extension.
func LoadFile(fs afero.Fs, path string) (template.Parameters, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading parameter file %q: %w", path, err)
	}
	params, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("error decoding parameter file %q: %w", path, err)
	}
	return params, nil
}

// LoadFiles reads parameter files in order.  Values from later files override earlier ones.
func LoadFiles(fs afero.Fs, paths []string) (template.Parameters, error) {
	sets := make([]template.Parameters, 0, len(paths))
	for _, path := range paths {
		params, err := LoadFile(fs, path)
		if err != nil {
			return nil, err
		}
		sets = append(sets, params)
	}
	return template.Merge(sets...), nil
}
