// Package json provides a config.Parser for JSON documents.
//
// Paths use the colon-separated form shared by every parser:
//
//	parser := json.NewParser()
//
//	var notifications any
//	err := parser.Parse(data, &notifications, "Notifications")
package json
