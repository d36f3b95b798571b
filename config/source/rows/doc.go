// Package rows provides a source over a remote key/value store whose values
// may hold JSON documents.
//
// A Store returns the configuration as a flat map and is consulted on every
// load. FromReader turns a table of (key, json_value) rows into a Store:
//
//   - a blank value is stored as an empty string at the key
//   - a JSON object or array is flattened under the key
//   - a JSON scalar is stored at the key, null as an explicit null
//   - a value that is not valid JSON is stored verbatim at the key
//
// Rows are converted one at a time, so a malformed row never affects its neighbours.
package rows
