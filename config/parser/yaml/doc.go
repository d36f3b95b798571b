// Package yaml provides a config.Parser for YAML documents using
// github.com/goccy/go-yaml.
//
// Usage:
//
//	parser := yaml.NewParser()
//	var general GeneralSettings
//	err := parser.Parse(data, &general, "General")
//
// Parsing into *any yields the generic tree that document sources flatten:
// mappings become map[string]any and sequences []any.
package yaml
