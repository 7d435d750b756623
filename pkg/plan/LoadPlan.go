// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package plan

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/deptofdefense/adminscript/pkg/catalog"
	"github.com/deptofdefense/adminscript/pkg/dialect"
)

// Parse decodes and validates a YAML plan.  Unknown fields are rejected.
func Parse(data []byte) (*Plan, error) {
	p := &Plan{}
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	if err := d.Decode(p); err != nil {
		return nil, fmt.Errorf("error parsing plan: %w", err)
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadPlan reads and parses the plan at path.
func LoadPlan(fs afero.Fs, path string) (*Plan, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading plan %q: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading plan %q: %w", path, err)
	}
	return p, nil
}

// Validate checks that the plan has steps and that every step template belongs to the plan dialect.
func Validate(p *Plan) error {
	d, err := dialect.Parse(p.Dialect.String())
	if err != nil {
		return err
	}
	p.Dialect = d
	if len(p.Steps) == 0 {
		return errors.New("plan has no steps")
	}
	for i, step := range p.Steps {
		if len(step.Template) == 0 {
			return fmt.Errorf("step %d has no template", i+1)
		}
		sd, err := catalog.DialectOf(step.Template)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if sd != d {
			return fmt.Errorf("step %d: template %q uses dialect %s, but the plan uses %s", i+1, step.Template, sd, d)
		}
	}
	return nil
}

// ForTemplate returns a plan with a single step running the named template.
func ForTemplate(name string) (*Plan, error) {
	d, err := catalog.DialectOf(name)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Dialect: d,
		Steps:   []Step{{Template: name}},
	}, nil
}
