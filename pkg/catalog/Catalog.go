// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/deptofdefense/adminscript/pkg/dialect"
	"github.com/deptofdefense/adminscript/pkg/fs"
	"github.com/deptofdefense/adminscript/pkg/template"
)

const (
	Extension = ".py"
)

var (
	ErrNotFound = errors.New("template not found")
)

// Catalog resolves template names against overlay roots and then the built-in templates.
// A template named "weblogic/datasource" is read from "weblogic/datasource.py" of the first root that has it.
type Catalog struct {
	roots []fs.FileSystem
}

// New returns a catalog that searches the overlays in order before the built-in templates.
func New(overlays ...fs.FileSystem) *Catalog {
	roots := make([]fs.FileSystem, 0, len(overlays)+1)
	roots = append(roots, overlays...)
	roots = append(roots, Builtin())
	return &Catalog{roots: roots}
}

// CheckRoots returns an error if an overlay root does not exist or is not a directory.
func (c *Catalog) CheckRoots(ctx context.Context) error {
	for i, root := range c.roots[:len(c.roots)-1] {
		fi, err := root.Stat(ctx, "/")
		if err != nil {
			return fmt.Errorf("error checking template root %d: %w", i+1, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("template root %d is not a directory", i+1)
		}
	}
	return nil
}

// DialectOf returns the dialect of the named template, derived from its vendor directory.
func DialectOf(name string) (dialect.Dialect, error) {
	if !CheckName(name) {
		return "", fmt.Errorf("invalid template name %q", name)
	}
	vendor := name[:strings.Index(name, "/")]
	d, ok := dialect.ForVendor(vendor)
	if !ok {
		return "", fmt.Errorf("template %q has unknown vendor %q", name, vendor)
	}
	return d, nil
}

func (c *Catalog) find(ctx context.Context, name string) (fs.FileSystem, string, error) {
	if _, err := DialectOf(name); err != nil {
		return nil, "", err
	}
	for _, root := range c.roots {
		p := root.Join("/", name+Extension)
		fi, err := root.Stat(ctx, p)
		if err != nil {
			if root.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("error looking up template %q: %w", name, err)
		}
		if fi.IsDir() {
			continue
		}
		return root, p, nil
	}
	return nil, "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Source returns the raw text of the named template.
func (c *Catalog) Source(ctx context.Context, name string) ([]byte, error) {
	root, p, err := c.find(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(ctx, root, p)
	if err != nil {
		return nil, fmt.Errorf("error reading template %q: %w", name, err)
	}
	return data, nil
}

// Get returns the parsed named template.
func (c *Catalog) Get(ctx context.Context, name string) (template.Template, error) {
	data, err := c.Source(ctx, name)
	if err != nil {
		return nil, err
	}
	t, err := template.Parse(name, string(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing template %q: %w", name, err)
	}
	return t, nil
}

// List returns every template available from any root, sorted by name.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	entries := map[string]Entry{}
	builtin := len(c.roots) - 1
	for i, root := range c.roots {
		for _, d := range dialect.Dialects() {
			directoryEntries, err := root.ReadDir(ctx, root.Join("/", d.Vendor()))
			if err != nil {
				if root.IsNotExist(err) {
					continue
				}
				return nil, fmt.Errorf("error listing templates for %q: %w", d.Vendor(), err)
			}
			for _, directoryEntry := range directoryEntries {
				if directoryEntry.IsDir() || !strings.HasSuffix(directoryEntry.Name(), Extension) {
					continue
				}
				name := d.Vendor() + "/" + strings.TrimSuffix(directoryEntry.Name(), Extension)
				if !CheckName(name) {
					continue
				}
				if _, ok := entries[name]; ok {
					continue
				}
				entries[name] = Entry{Name: name, Dialect: d, Builtin: i == builtin}
			}
		}
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Entry, 0, len(names))
	for _, name := range names {
		list = append(list, entries[name])
	}
	return list, nil
}
