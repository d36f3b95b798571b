package flat

import (
	"strconv"
	"strings"
)

type node struct {
	value    Value
	hasValue bool
	names    []string
	children map[string]*node
}

func (n *node) child(segment string) *node {
	key := fold(segment)

	if n.children == nil {
		n.children = make(map[string]*node)
	}

	existing, ok := n.children[key]
	if ok {
		return existing
	}

	created := &node{}
	n.children[key] = created
	n.names = append(n.names, segment)

	return created
}

// Unflatten rebuilds the tree stored under prefix. Objects become
// map[string]any, children named 0..n-1 become []any, non-null leaves become
// strings and null leaves become nil. The boolean reports whether any entry
// exists at or below prefix.
//
// When a path holds both a value and children, the children win.
func Unflatten(m Mapping, prefix string) (any, bool) {
	root := &node{}
	found := false

	prefixSegments := Split(prefix)

	for _, entry := range m.Entries() {
		rest, ok := relative(entry.Path, prefixSegments)
		if !ok {
			continue
		}

		found = true

		current := root
		for _, segment := range Split(rest) {
			current = current.child(segment)
		}

		current.value = entry.Value
		current.hasValue = true
	}

	if !found {
		return nil, false
	}

	return root.build(), true
}

// Section returns the entries stored below prefix with the prefix removed.
func (m Mapping) Section(prefix string) Mapping {
	builder := NewBuilder()
	prefixSegments := Split(prefix)

	for _, entry := range m.entries {
		rest, ok := relative(entry.Path, prefixSegments)
		if !ok || rest == "" {
			continue
		}

		builder.Set(rest, entry.Value)
	}

	return builder.Mapping()
}

// relative strips the prefix segments from path, comparing them case-insensitively.
func relative(path string, prefix []string) (string, bool) {
	if len(prefix) == 0 {
		return path, true
	}

	segments := strings.Split(path, Delimiter)
	if len(segments) < len(prefix) {
		return "", false
	}

	for i, segment := range prefix {
		if !strings.EqualFold(segments[i], segment) {
			return "", false
		}
	}

	return strings.Join(segments[len(prefix):], Delimiter), true
}

func (n *node) build() any {
	if len(n.children) == 0 {
		if !n.hasValue || !n.value.Valid {
			return nil
		}

		return n.value.String
	}

	if n.isArray() {
		items := make([]any, len(n.children))
		for i := range items {
			items[i] = n.children[strconv.Itoa(i)].build()
		}

		return items
	}

	object := make(map[string]any, len(n.children))
	for _, name := range n.names {
		object[name] = n.children[fold(name)].build()
	}

	return object
}

func (n *node) isArray() bool {
	for i := range len(n.children) {
		if _, ok := n.children[strconv.Itoa(i)]; !ok {
			return false
		}
	}

	return true
}
