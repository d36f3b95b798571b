package flat

import "fmt"

// ParseError reports a document or entry that could not be parsed.
// Key is the path the document was going to be flattened under.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}

	return fmt.Sprintf("parse %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
