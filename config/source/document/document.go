package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
)

// ErrNilFetcher is returned when no fetcher is given.
var ErrNilFetcher = fmt.Errorf("%w: document fetcher must not be nil", config.ErrMisconfigured)

// ErrNilParser is returned when no parser is given.
var ErrNilParser = fmt.Errorf("%w: document parser must not be nil", config.ErrMisconfigured)

// Option configures a Source.
type Option func(*Source)

// WithPath selects the document node to flatten, using colon-separated segments.
func WithPath(path string) Option {
	return func(s *Source) {
		s.path = path
	}
}

// WithPrefix places the flattened entries under prefix.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// Source fetches a document on every load, parses it into a generic tree and
// flattens the tree.
type Source struct {
	fetcher config.DataFetcher
	parser  config.Parser
	path    string
	prefix  string
}

// New creates a document source.
func New(fetcher config.DataFetcher, parser config.Parser, opts ...Option) (*Source, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}

	if parser == nil {
		return nil, ErrNilParser
	}

	source := &Source{
		fetcher: fetcher,
		parser:  parser,
	}

	for _, apply := range opts {
		apply(source)
	}

	return source, nil
}

// Load fetches and flattens the document. A blank document yields an empty
// mapping. A document that cannot be parsed fails the load with a *flat.ParseError.
func (s *Source) Load(_ context.Context) (flat.Mapping, error) {
	data, err := s.fetcher.Fetch()
	if err != nil {
		return flat.Mapping{}, fmt.Errorf("fetch document: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return flat.Mapping{}, nil
	}

	var tree any

	err = s.parser.Parse(data, &tree, s.path)
	if err != nil {
		return flat.Mapping{}, &flat.ParseError{Key: s.path, Err: err}
	}

	return flat.Flatten(tree, s.prefix), nil
}

// Bytes is a DataFetcher serving a fixed document.
type Bytes []byte

// Fetch returns a copy of the document.
func (b Bytes) Fetch() ([]byte, error) {
	if b == nil {
		return nil, errNoDocument
	}

	return bytes.Clone(b), nil
}

var errNoDocument = errors.New("no document")
