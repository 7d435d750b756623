// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptofdefense/adminscript/pkg/template"
)

func TestParseAssignments(t *testing.T) {
	params, err := ParseAssignments([]string{
		"cargo.servlet.port=8080",
		"cargo.datasource.password=",
		"cargo.jvmargs=-Xmx512m -Dx=y",
	})
	require.NoError(t, err)
	assert.Equal(t, template.Parameters{
		"cargo.servlet.port":        "8080",
		"cargo.datasource.password": "",
		"cargo.jvmargs":             "-Xmx512m -Dx=y",
	}, params)
}

func TestParseAssignmentsInvalid(t *testing.T) {
	_, err := ParseAssignments([]string{"cargo.servlet.port"})
	assert.Error(t, err)
	_, err = ParseAssignments([]string{"=8080"})
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	format, err := FormatForPath("/etc/cargo/domain.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)
	_, err = FormatForPath("domain")
	assert.Error(t, err)
}
