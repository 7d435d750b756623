// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package template

import (
	"sort"
)

// Parameters maps placeholder names to literal replacement values.
type Parameters map[string]string

// Missing returns the sorted names that have no value in the parameters.
// An empty value counts as present.
func (p Parameters) Missing(names []string) []string {
	missing := []string{}
	for _, name := range names {
		if _, ok := p[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Keys returns the sorted parameter names.
func (p Parameters) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a new parameter set.  Values from later sets override earlier ones.
func Merge(sets ...Parameters) Parameters {
	merged := Parameters{}
	for _, set := range sets {
		for k, v := range set {
			merged[k] = v
		}
	}
	return merged
}
