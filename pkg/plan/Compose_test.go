// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package plan

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptofdefense/adminscript/pkg/catalog"
	"github.com/deptofdefense/adminscript/pkg/dialect"
	"github.com/deptofdefense/adminscript/pkg/template"
)

type mapGetter map[string]string

func (m mapGetter) Get(ctx context.Context, name string) (template.Template, error) {
	text, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrNotFound, name)
	}
	return template.Parse(name, text)
}

func TestComposeWLST(t *testing.T) {
	p, err := Parse([]byte(testPlan))
	require.NoError(t, err)
	out, err := Compose(context.Background(), catalog.New(), p, template.Parameters{
		"cargo.weblogic.domain.home": "/opt/domains/base_domain",
	})
	require.NoError(t, err)
	assert.Equal(t, "readDomain('/opt/domains/base_domain')\ncd('/JTA/base_domain')\nset('TimeoutSeconds', 600)\ndumpStack()\n", out)
}

func TestComposePrecedence(t *testing.T) {
	getter := mapGetter{
		"websphere/a": "print '@x@ @y@ @z@'",
		"websphere/b": "print '@x@ @y@ @z@'\n",
	}
	p := &Plan{
		Dialect:    dialect.Wsadmin,
		Wsadminlib: "/opt/wsadminlib.py",
		Parameters: Parameters{"x": "plan", "y": "plan", "z": "plan"},
		Steps: []Step{
			{Template: "websphere/a", Parameters: Parameters{"z": "step"}},
			{Template: "websphere/b"},
		},
	}
	out, err := Compose(context.Background(), getter, p, template.Parameters{"y": "caller", "z": "caller"})
	require.NoError(t, err)
	assert.Equal(t, "execfile('/opt/wsadminlib.py')\nprint 'plan caller step'\nprint 'plan caller caller'\n", out)
}

func TestComposeCollectsMissingParameters(t *testing.T) {
	getter := mapGetter{
		"weblogic/a": "@a@ @shared@\n",
		"weblogic/b": "@b@ @shared@\n",
		"weblogic/c": "@c@\n",
	}
	p := &Plan{
		Dialect: dialect.WLST,
		Steps: []Step{
			{Template: "weblogic/a"},
			{Template: "weblogic/b"},
			{Template: "weblogic/c", Parameters: Parameters{"c": "1"}},
		},
	}
	out, err := Compose(context.Background(), getter, p, template.Parameters{})
	require.Error(t, err)
	assert.Empty(t, out)
	var missing *template.MissingParametersError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"a", "b", "shared"}, missing.Names)
}

func TestComposeUnknownTemplate(t *testing.T) {
	p := &Plan{Dialect: dialect.WLST, Steps: []Step{{Template: "weblogic/missing"}}}
	_, err := Compose(context.Background(), mapGetter{}, p, template.Parameters{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestComposeDeterministic(t *testing.T) {
	p, err := Parse([]byte(testPlan))
	require.NoError(t, err)
	base := template.Parameters{"cargo.weblogic.domain.home": "/opt/domains/base_domain"}
	first, err := Compose(context.Background(), catalog.New(), p, base)
	require.NoError(t, err)
	second, err := Compose(context.Background(), catalog.New(), p, base)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
