// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package dialect

import (
	"fmt"
	"strings"
)

// Dialect is the scripting language of a vendor interpreter.
type Dialect string

const (
	WLST    Dialect = "wlst"
	Wsadmin Dialect = "wsadmin"
)

var (
	vendors = map[Dialect]string{
		WLST:    "weblogic",
		Wsadmin: "websphere",
	}
)

// Dialects returns all supported dialects.
func Dialects() []Dialect {
	return []Dialect{WLST, Wsadmin}
}

// Vendor returns the name of the template directory for the dialect.
func (d Dialect) Vendor() string {
	return vendors[d]
}

func (d Dialect) String() string {
	return string(d)
}

// Trailer returns the lines appended to every composed script.
func (d Dialect) Trailer() []string {
	if d == WLST {
		return []string{"dumpStack()"}
	}
	return []string{}
}

// Preamble returns the lines prepended to every composed script.
// The wsadmin dialect imports wsadminlib when a path is given.
func (d Dialect) Preamble(wsadminlib string) []string {
	if d == Wsadmin && len(wsadminlib) > 0 {
		return []string{fmt.Sprintf("execfile('%s')", wsadminlib)}
	}
	return []string{}
}

// Parse returns the dialect for the given name.
func Parse(str string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(str)))
	if _, ok := vendors[d]; !ok {
		return "", fmt.Errorf("unknown dialect %q, expecting one of %s", str, strings.Join(names(), ", "))
	}
	return d, nil
}

// ForVendor returns the dialect whose templates live in the given vendor directory.
func ForVendor(vendor string) (Dialect, bool) {
	for d, v := range vendors {
		if v == vendor {
			return d, true
		}
	}
	return "", false
}

func names() []string {
	str := []string{}
	for _, d := range Dialects() {
		str = append(str, d.String())
	}
	return str
}
