// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/deptofdefense/adminscript/pkg/template"
)

// Decode parses parameter file content in the given format.
//
// Structured formats must contain a single map.  Nested maps are flattened with "."
// so that {"cargo": {"servlet": {"port": 8080}}} becomes cargo.servlet.port=8080.
// YAML and JSON scalars keep their literal text.  TOML values must be strings or booleans.
func Decode(format string, data []byte) (template.Parameters, error) {
	switch format {
	case FormatProperties:
		// values are used verbatim, ${...} is left for the interpreter
		loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
		p, err := loader.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing properties: %w", err)
		}
		params := template.Parameters{}
		for _, k := range p.Keys() {
			params[k] = p.GetString(k, "")
		}
		return params, nil
	case FormatYAML:
		node := &yaml.Node{}
		if err := yaml.Unmarshal(data, node); err != nil {
			return nil, fmt.Errorf("error parsing yaml: %w", err)
		}
		return FromYAMLNode(node)
	case FormatJSON:
		obj := map[string]interface{}{}
		d := json.NewDecoder(bytes.NewReader(data))
		d.UseNumber()
		if err := d.Decode(&obj); err != nil {
			return nil, fmt.Errorf("error parsing json: %w", err)
		}
		return Flatten(obj)
	case FormatTOML:
		obj := map[string]interface{}{}
		if _, err := toml.Decode(string(data), &obj); err != nil {
			return nil, fmt.Errorf("error parsing toml: %w", err)
		}
		return Flatten(obj)
	}
	return nil, fmt.Errorf("unknown parameter file format %q", format)
}

// FromYAMLNode converts a YAML mapping into parameters, joining nested keys with ".".
// Scalar values are taken as written, so 0o17 stays "0o17" and 12.10 stays "12.10".
func FromYAMLNode(node *yaml.Node) (template.Parameters, error) {
	params := template.Parameters{}
	for node.Kind == yaml.DocumentNode || node.Kind == yaml.AliasNode {
		if node.Kind == yaml.AliasNode {
			node = node.Alias
			continue
		}
		if len(node.Content) == 0 {
			return params, nil
		}
		node = node.Content[0]
	}
	switch node.Kind {
	case 0:
		return params, nil
	case yaml.MappingNode:
		if err := fromYAMLMapping(params, "", node); err != nil {
			return nil, err
		}
		return params, nil
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return params, nil
		}
	}
	return nil, fmt.Errorf("parameters must be a map, found %s on line %d", node.ShortTag(), node.Line)
}

func fromYAMLMapping(params template.Parameters, prefix string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if len(prefix) > 0 {
			name = prefix + "." + name
		}
		value := node.Content[i+1]
		for value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		switch value.Kind {
		case yaml.MappingNode:
			if err := fromYAMLMapping(params, name, value); err != nil {
				return err
			}
		case yaml.ScalarNode:
			if value.ShortTag() == "!!null" {
				params[name] = ""
			} else {
				params[name] = value.Value
			}
		default:
			return fmt.Errorf("parameter %q on line %d is not a scalar, only scalar values are supported", name, value.Line)
		}
	}
	return nil
}

// Flatten converts a decoded map into parameters, joining nested keys with ".".
// Only strings, booleans, and json.Number values are accepted.
func Flatten(obj map[string]interface{}) (template.Parameters, error) {
	params := template.Parameters{}
	if err := flattenInto(params, "", obj); err != nil {
		return nil, err
	}
	return params, nil
}

func flattenInto(params template.Parameters, prefix string, obj map[string]interface{}) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := k
		if len(prefix) > 0 {
			name = prefix + "." + k
		}
		switch v := obj[k].(type) {
		case map[string]interface{}:
			if err := flattenInto(params, name, v); err != nil {
				return err
			}
		case nil:
			params[name] = ""
		case string:
			params[name] = v
		case json.Number:
			params[name] = v.String()
		case bool:
			params[name] = cast.ToString(v)
		case []interface{}, []map[string]interface{}:
			return fmt.Errorf("parameter %q is a list, only scalar values are supported", name)
		default:
			// the decoded number or date no longer carries the text that was written
			return fmt.Errorf("parameter %q has type %T, quote the value to use it as written", name, v)
		}
	}
	return nil
}
