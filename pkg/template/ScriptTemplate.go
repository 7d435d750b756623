// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package template

import (
	"fmt"
	"io"
	"strings"
)

// ScriptTemplate is a parsed vendor script template.
type ScriptTemplate struct {
	name         string
	root         *node
	placeholders []string
}

func (t *ScriptTemplate) Name() string {
	return t.name
}

func (t *ScriptTemplate) Placeholders() []string {
	placeholders := make([]string, len(t.placeholders))
	copy(placeholders, t.placeholders)
	return placeholders
}

// Check returns a *MissingParametersError if any placeholder has no value.
func (t *ScriptTemplate) Check(params Parameters) error {
	if missing := params.Missing(t.placeholders); len(missing) > 0 {
		return &MissingParametersError{Template: t.name, Names: missing}
	}
	return nil
}

// Execute writes the rendered template to w.  Nothing is written if a parameter is missing.
func (t *ScriptTemplate) Execute(w io.Writer, params Parameters) error {
	str, err := t.Render(params)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, str)
	if err != nil {
		return fmt.Errorf("error writing template %q: %w", t.name, err)
	}
	return nil
}

// Render returns the rendered template as a string.
func (t *ScriptTemplate) Render(params Parameters) (string, error) {
	if err := t.Check(params); err != nil {
		return "", err
	}
	b := &strings.Builder{}
	render(b, t.root.children, params)
	return b.String(), nil
}

func render(b *strings.Builder, nodes []*node, params Parameters) {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)
		case nodePlaceholder:
			b.WriteString(params[n.name])
		case nodeGuard:
			if len(params[n.name]) > 0 {
				render(b, n.children, params)
			}
		}
	}
}
