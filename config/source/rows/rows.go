package rows

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
)

// ErrNilStore is returned when no store is given.
var ErrNilStore = fmt.Errorf("%w: row store must not be nil", config.ErrMisconfigured)

// ErrNilReader is returned when no row reader is given.
var ErrNilReader = fmt.Errorf("%w: row reader must not be nil", config.ErrMisconfigured)

// Store is a remote configuration store. nil values are explicit nulls.
type Store interface {
	LoadConfiguration(ctx context.Context) (map[string]*string, error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(ctx context.Context) (map[string]*string, error)

// LoadConfiguration calls f.
func (f StoreFunc) LoadConfiguration(ctx context.Context) (map[string]*string, error) {
	return f(ctx)
}

// Row is a stored setting: a key and a value that usually holds JSON.
type Row struct {
	Key   string
	Value string
}

// RowReader lists stored rows.
type RowReader interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Source passes the store's configuration through unchanged.
type Source struct {
	store Store
}

// NewSource creates a source around store.
func NewSource(store Store) (*Source, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	return &Source{store: store}, nil
}

// Load reads the configuration from the store.
func (s *Source) Load(ctx context.Context) (flat.Mapping, error) {
	values, err := s.store.LoadConfiguration(ctx)
	if err != nil {
		return flat.Mapping{}, fmt.Errorf("load configuration: %w", err)
	}

	return flat.FromNullable(values), nil
}

// ReaderOption configures the Store returned by FromReader.
type ReaderOption func(*readerStore)

// WithLogger sets the logger reporting rows stored verbatim.
func WithLogger(logger *slog.Logger) ReaderOption {
	return func(s *readerStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type readerStore struct {
	reader RowReader
	logger *slog.Logger
}

// FromReader creates a Store that converts the reader's rows into flat entries.
// Rows are applied in order, so a later row wins when two rows produce the same path.
func FromReader(reader RowReader, opts ...ReaderOption) (Store, error) {
	if reader == nil {
		return nil, ErrNilReader
	}

	store := &readerStore{reader: reader, logger: slog.Default()}

	for _, apply := range opts {
		apply(store)
	}

	return store, nil
}

func (s *readerStore) LoadConfiguration(ctx context.Context) (map[string]*string, error) {
	rows, err := s.reader.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	builder := flat.NewBuilder()

	for _, row := range rows {
		err := FlattenRow(builder, row)
		if err != nil {
			s.logger.Debug("row value is not JSON, stored verbatim",
				slog.String("key", row.Key), slog.Any("error", err))
		}
	}

	return builder.Mapping().Nullable(), nil
}

// FlattenRow adds the entries of one row to builder. A value that is not valid
// JSON is stored verbatim and the *flat.ParseError is returned for reporting.
func FlattenRow(builder *flat.Builder, row Row) error {
	if strings.TrimSpace(row.Value) == "" {
		builder.Set(row.Key, flat.StringValue(""))

		return nil
	}

	tree, err := flat.DecodeJSON([]byte(row.Value))
	if err != nil {
		builder.Set(row.Key, flat.StringValue(row.Value))

		return &flat.ParseError{Key: row.Key, Err: err}
	}

	flat.FlattenInto(builder, tree, row.Key)

	return nil
}
