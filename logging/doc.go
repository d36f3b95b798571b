// Package logging builds the structured logger used across the configuration
// engine. JSON output is the default; the text format renders colored,
// human-readable lines for local development.
package logging
