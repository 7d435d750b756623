// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package plan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/deptofdefense/adminscript/pkg/template"
)

// TemplateGetter returns a parsed template by name.
type TemplateGetter interface {
	Get(ctx context.Context, name string) (template.Template, error)
}

// Compose renders every step of the plan into one script.
//
// Each step is rendered with the plan parameters, then the given parameters, then the step parameters,
// later values overriding earlier ones.  If any step is missing parameters, a single
// *template.MissingParametersError naming all of them is returned and nothing is rendered.
func Compose(ctx context.Context, getter TemplateGetter, p *Plan, base template.Parameters) (string, error) {
	shared := template.Parameters(p.Parameters)

	templates := make([]template.Template, 0, len(p.Steps))
	stepParameters := make([]template.Parameters, 0, len(p.Steps))
	missing := map[string]struct{}{}
	for i, step := range p.Steps {
		t, err := getter.Get(ctx, step.Template)
		if err != nil {
			return "", fmt.Errorf("error loading step %d: %w", i+1, err)
		}
		merged := template.Merge(shared, base, template.Parameters(step.Parameters))
		for _, name := range merged.Missing(t.Placeholders()) {
			missing[name] = struct{}{}
		}
		templates = append(templates, t)
		stepParameters = append(stepParameters, merged)
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return "", &template.MissingParametersError{Names: names}
	}

	b := &strings.Builder{}
	for _, line := range p.Dialect.Preamble(p.Wsadminlib) {
		b.WriteString(line + "\n")
	}
	for i, t := range templates {
		if err := t.Execute(b, stepParameters[i]); err != nil {
			return "", fmt.Errorf("error rendering step %d: %w", i+1, err)
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}
	for _, line := range p.Dialect.Trailer() {
		b.WriteString(line + "\n")
	}
	return b.String(), nil
}
