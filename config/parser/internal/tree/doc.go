// Package tree navigates generic document trees produced by the parsers.
package tree
