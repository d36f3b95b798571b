// Package memory provides a source over an in-memory flat map.
//
// Keys are flat paths and values are stored as given:
//
//	provider, err := config.NewProvider("overrides", memory.New(map[string]string{
//		"Server:Port": "9443",
//	}))
//
// NewNullable accepts nil values, which the root reports as present but null.
// Set replaces the map; the change is visible after the provider reloads.
package memory
