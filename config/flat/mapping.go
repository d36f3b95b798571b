package flat

import (
	"sort"
	"strings"
)

// Delimiter separates the segments of a configuration path.
const Delimiter = ":"

// Entry is a single path/value pair of a Mapping.
type Entry struct {
	Path  string
	Value Value
}

// Mapping is an immutable set of entries keyed by case-insensitive path.
// The zero value is an empty mapping.
type Mapping struct {
	entries map[string]Entry
}

// Join appends segment to prefix using Delimiter. An empty prefix yields the segment itself.
func Join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}

	return prefix + Delimiter + segment
}

// Split breaks a path into its segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, Delimiter)
}

func fold(path string) string {
	return strings.ToLower(path)
}

// FromStrings builds a Mapping from a plain string map.
func FromStrings(values map[string]string) Mapping {
	builder := NewBuilder()

	for path, value := range values {
		builder.Set(path, StringValue(value))
	}

	return builder.Mapping()
}

// FromNullable builds a Mapping from a map whose nil values are explicit nulls.
func FromNullable(values map[string]*string) Mapping {
	builder := NewBuilder()

	for path, value := range values {
		builder.Set(path, FromPtr(value))
	}

	return builder.Mapping()
}

// Lookup returns the value stored at path and whether the path is present.
// A present path may hold a null value.
func (m Mapping) Lookup(path string) (Value, bool) {
	entry, ok := m.entries[fold(path)]

	return entry.Value, ok
}

// Len returns the number of entries.
func (m Mapping) Len() int {
	return len(m.entries)
}

// Entries returns all entries ordered by path.
func (m Mapping) Entries() []Entry {
	result := make([]Entry, 0, len(m.entries))

	for _, entry := range m.entries {
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		return fold(result[i].Path) < fold(result[j].Path)
	})

	return result
}

// Nullable returns a copy of the mapping as a map of string pointers.
func (m Mapping) Nullable() map[string]*string {
	result := make(map[string]*string, len(m.entries))

	for _, entry := range m.entries {
		result[entry.Path] = entry.Value.Ptr()
	}

	return result
}

// Equal reports whether both mappings hold the same paths and values.
// Path casing is ignored.
func (m Mapping) Equal(other Mapping) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}

	for key, entry := range m.entries {
		otherEntry, ok := other.entries[key]
		if !ok || otherEntry.Value != entry.Value {
			return false
		}
	}

	return true
}

// Builder accumulates entries for a new Mapping. The last write to a path wins.
type Builder struct {
	entries map[string]Entry
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]Entry)}
}

// Set stores value at path, replacing any previous value regardless of casing.
func (b *Builder) Set(path string, value Value) {
	if b.entries == nil {
		b.entries = make(map[string]Entry)
	}

	b.entries[fold(path)] = Entry{Path: path, Value: value}
}

// Merge copies every entry of m under prefix.
func (b *Builder) Merge(m Mapping, prefix string) {
	for _, entry := range m.entries {
		path := entry.Path
		if prefix != "" {
			path = Join(prefix, entry.Path)
			if entry.Path == "" {
				path = prefix
			}
		}

		b.Set(path, entry.Value)
	}
}

// Mapping returns the accumulated entries and resets the builder.
// The returned Mapping never shares state with later writes to the builder.
func (b *Builder) Mapping() Mapping {
	m := Mapping{entries: b.entries}
	b.entries = nil

	return m
}
