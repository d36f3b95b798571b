// Package document provides a source that parses a fetched document
// (JSON or YAML) into a tree and flattens it.
//
// The document is fetched and parsed again on every load:
//
//	fetcher, err := file.NewFetcher("settings.yaml")()
//	source, err := document.New(fetcher, yaml.NewParser(), document.WithPrefix("App"))
//
// WithPath selects a subtree before flattening and WithPrefix places the
// result under a path. A blank document loads as an empty mapping.
package document
