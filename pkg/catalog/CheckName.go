// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package catalog

import (
	"path"
	"strings"
)

// CheckName returns true if the given template name is ok, which means it has the form "vendor/operation"
// and contains no "." or ".." path elements.
func CheckName(name string) bool {
	// If the name includes a ".." element, path.Clean will return a different string.
	if name != path.Clean(name) || strings.HasPrefix(name, "../") || strings.HasPrefix(name, "/") {
		return false
	}
	parts := strings.Split(name, "/")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && len(parts[1]) > 0 && parts[1] != ".." && parts[0] != ".."
}
