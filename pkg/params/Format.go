// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package params

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	FormatProperties = "properties"
	FormatYAML       = "yaml"
	FormatJSON       = "json"
	FormatTOML       = "toml"
)

var (
	SupportedFormats = []string{
		FormatProperties,
		FormatYAML,
		FormatJSON,
		FormatTOML,
	}
	formatExtensions = map[string]string{
		".properties": FormatProperties,
		".yaml":       FormatYAML,
		".yml":        FormatYAML,
		".json":       FormatJSON,
		".toml":       FormatTOML,
	}
)

// FormatForPath returns the parameter file format for the extension of path.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := formatExtensions[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("unknown parameter file extension %q, expecting one of: %s", ext, strings.Join(SupportedFormats, ","))
}
