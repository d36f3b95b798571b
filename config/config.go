package config

// Parser decodes a raw document into target.
//
// path selects a node inside the document with colon-separated segments,
// matched case-insensitively when no exact key exists. Numeric segments index
// into sequences:
//   - "Notifications:UserSettings" selects a nested object
//   - "Notifications:UserSettings:PreferredChannels:0" selects one array element
//   - "" selects the whole document
//
// Document sources pass a *any target and flatten the generic tree they get
// back. See config/parser/yaml and config/parser/json.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher returns the raw bytes of a document. It is called on every load
// and reload, so it should return the current content rather than a cached copy.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by bound targets that check their own values.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by bound targets that fill unset fields.
// SetDefaults reports whether anything was changed.
type Defaulter interface {
	SetDefaults() (changed bool)
}
