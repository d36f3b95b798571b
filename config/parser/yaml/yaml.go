package yaml

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-config/config/parser/internal/tree"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser interface for YAML data.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and stores the node at path into target.
// The path parameter uses colon (:) as separator; mapping keys match
// case-insensitively when no exact key exists and numeric segments index
// sequences. Empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	var document any

	err := yaml.Unmarshal(data, &document)
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

	raw, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.Unmarshal(raw, target)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}
