package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-config/config/flat"
	"github.com/0xalexb/hjarta-config/config/parser/internal/tree"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the JSON document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser interface for JSON data.
// Numbers keep their original text when parsed into an untyped target.
type Parser struct{}

// NewParser creates a new JSON parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses JSON data and stores the node at path into target.
// The path parameter uses colon (:) as separator; object keys match
// case-insensitively when no exact key exists and numeric segments index arrays.
// Empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return ErrEmptyData
	}

	document, err := flat.DecodeJSON(data)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	node, ok := tree.Navigate(document, path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	if untyped, ok := target.(*any); ok {
		*untyped = node

		return nil
	}

	raw, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = json.Unmarshal(raw, target)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}
