// Package flat converts nested values into flat, colon-delimited key/value
// mappings and back.
//
// A Mapping is an immutable set of entries keyed by path. Paths are sequences
// of segments joined by Delimiter and compare case-insensitively while keeping
// the casing they were stored with:
//
//	{"Notifications": {"Enabled": true}} -> "Notifications:Enabled" = "True"
//	["a", "b"] under "Hosts"              -> "Hosts:0" = "a", "Hosts:1" = "b"
//
// Flatten is the single flattening algorithm used by every configuration
// source. Object graphs take part by implementing Fielder, which declares the
// (name, value) pairs of a type instead of relying on struct introspection.
// Maps with string keys and slices are walked structurally, scalars are
// rendered in their canonical string form and nil becomes an explicit null
// entry, which is distinguishable from an absent key.
//
// Unflatten reverses the process for a section of a Mapping, turning
// contiguous zero-based numeric children back into slices.
package flat
