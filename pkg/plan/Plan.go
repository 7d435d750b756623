// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package plan

import (
	"gopkg.in/yaml.v3"

	"github.com/deptofdefense/adminscript/pkg/dialect"
	"github.com/deptofdefense/adminscript/pkg/params"
	"github.com/deptofdefense/adminscript/pkg/template"
)

// Parameters are plan or step parameters.  Nested YAML maps are flattened with "." and
// scalar values are kept as written.
type Parameters template.Parameters

func (p *Parameters) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := params.FromYAMLNode(value)
	if err != nil {
		return err
	}
	*p = Parameters(decoded)
	return nil
}

// Step renders one template with step parameters layered over the shared parameters.
type Step struct {
	Template   string     `yaml:"template"`
	Parameters Parameters `yaml:"parameters,omitempty"`
}

// Plan is an ordered list of steps composed into one script of a single dialect.
type Plan struct {
	Dialect    dialect.Dialect `yaml:"dialect"`
	Wsadminlib string          `yaml:"wsadminlib,omitempty"`
	Parameters Parameters      `yaml:"parameters,omitempty"`
	Steps      []Step          `yaml:"steps"`
}
