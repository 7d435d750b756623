// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	placeholderExpression = regexp.MustCompile(`@([A-Za-z0-9_.\-]+)@`)
	guardOpenExpression   = regexp.MustCompile(`^#if\s+@([A-Za-z0-9_.\-]+)@$`)
)

const (
	guardClose = "#end"
)

type nodeKind int

const (
	nodeText nodeKind = iota
	nodePlaceholder
	nodeGuard
)

type node struct {
	kind     nodeKind
	text     string
	name     string
	children []*node
}

// Parse parses template text.
//
// Placeholders are written as @name@.  A line consisting of "#if @name@" opens a
// block that is only rendered when the named parameter is not empty, and a line
// consisting of "#end" closes it.  Guard lines are never part of the output.
func Parse(name string, text string) (Template, error) {
	root := &node{kind: nodeGuard}
	stack := []*node{root}
	openedOn := []int{0}
	names := map[string]struct{}{}

	for i, line := range strings.SplitAfter(text, "\n") {
		if len(line) == 0 {
			continue
		}
		lineNumber := i + 1
		trimmed := strings.TrimSpace(line)
		if m := guardOpenExpression.FindStringSubmatch(trimmed); m != nil {
			guard := &node{kind: nodeGuard, name: m[1]}
			names[m[1]] = struct{}{}
			top := stack[len(stack)-1]
			top.children = append(top.children, guard)
			stack = append(stack, guard)
			openedOn = append(openedOn, lineNumber)
			continue
		}
		if trimmed == guardClose {
			if len(stack) == 1 {
				return nil, fmt.Errorf("error parsing template %q: unexpected %q on line %d", name, guardClose, lineNumber)
			}
			stack = stack[:len(stack)-1]
			openedOn = openedOn[:len(openedOn)-1]
			continue
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, parseLine(line, names)...)
	}

	if len(stack) > 1 {
		return nil, fmt.Errorf("error parsing template %q: guard opened on line %d is never closed", name, openedOn[len(openedOn)-1])
	}

	placeholders := make([]string, 0, len(names))
	for n := range names {
		placeholders = append(placeholders, n)
	}
	sort.Strings(placeholders)

	return &ScriptTemplate{
		name:         name,
		root:         root,
		placeholders: placeholders,
	}, nil
}

func parseLine(line string, names map[string]struct{}) []*node {
	nodes := []*node{}
	offset := 0
	for _, match := range placeholderExpression.FindAllStringSubmatchIndex(line, -1) {
		if match[0] > offset {
			nodes = append(nodes, &node{kind: nodeText, text: line[offset:match[0]]})
		}
		n := line[match[2]:match[3]]
		names[n] = struct{}{}
		nodes = append(nodes, &node{kind: nodePlaceholder, name: n})
		offset = match[1]
	}
	if offset < len(line) {
		nodes = append(nodes, &node{kind: nodeText, text: line[offset:]})
	}
	return nodes
}
