package flat

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Field is a named member of a settings value.
type Field struct {
	Name  string
	Value any
}

// Fielder is implemented by types that declare their own members for flattening.
// Fields returns members in a stable order; nil values are recorded as nulls.
type Fielder interface {
	Fields() []Field
}

// Flatten converts v into a Mapping rooted at prefix.
//
// Objects (Fielder values and maps with string keys) contribute one child path
// per member, slices and arrays one child path per zero-based index. Scalars
// are stored in their canonical string form: booleans as "True"/"False",
// numbers without exponent padding, times as RFC 3339 and durations as Go
// duration strings. nil is stored as an explicit null. Values of unsupported
// kinds, such as structs that do not implement Fielder, are skipped.
func Flatten(v any, prefix string) Mapping {
	builder := NewBuilder()
	FlattenInto(builder, v, prefix)

	return builder.Mapping()
}

// FlattenInto flattens v into an existing builder.
func FlattenInto(builder *Builder, v any, prefix string) {
	walk(builder, prefix, v)
}

// DecodeJSON parses a single JSON document into a generic tree.
// Numbers are kept as json.Number so their original text survives flattening.
func DecodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var tree any

	err := decoder.Decode(&tree)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	_, err = decoder.Token()
	if !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return tree, nil
}

var errTrailingData = errors.New("unexpected data after top-level value")

// FlattenJSON parses data as JSON and flattens it under prefix.
// Malformed input is reported as a *ParseError.
func FlattenJSON(data []byte, prefix string) (Mapping, error) {
	tree, err := DecodeJSON(data)
	if err != nil {
		return Mapping{}, &ParseError{Key: prefix, Err: err}
	}

	return Flatten(tree, prefix), nil
}

func walk(builder *Builder, path string, v any) {
	if isNil(v) {
		builder.Set(path, Null())

		return
	}

	switch val := v.(type) {
	case Fielder:
		for _, field := range val.Fields() {
			walk(builder, Join(path, field.Name), field.Value)
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			walk(builder, Join(path, key), val[key])
		}
	case []any:
		for i, elem := range val {
			walk(builder, Join(path, strconv.Itoa(i)), elem)
		}
	default:
		if s, ok := scalar(v); ok {
			builder.Set(path, StringValue(s))

			return
		}

		walkReflect(builder, path, reflect.ValueOf(v))
	}
}

//nolint:cyclop // one case per scalar kind
func scalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return formatBool(val), true
	case json.Number:
		return val.String(), true
	case int:
		return strconv.Itoa(val), true
	case int8:
		return strconv.FormatInt(int64(val), 10), true
	case int16:
		return strconv.FormatInt(int64(val), 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint8:
		return strconv.FormatUint(uint64(val), 10), true
	case uint16:
		return strconv.FormatUint(uint64(val), 10), true
	case uint32:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case time.Duration:
		return val.String(), true
	case time.Time:
		return val.Format(time.RFC3339Nano), true
	case uuid.UUID:
		return val.String(), true
	case encoding.TextMarshaler:
		text, err := val.MarshalText()
		if err != nil {
			return "", false
		}

		return string(text), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}

	return "False"
}

// walkReflect handles named types and containers that the type switch in walk
// does not cover, e.g. []string, map[string]int or type Theme string.
func walkReflect(builder *Builder, path string, rv reflect.Value) {
	switch rv.Kind() { //nolint:exhaustive // unsupported kinds are skipped
	case reflect.Pointer, reflect.Interface:
		walk(builder, path, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			walk(builder, Join(path, strconv.Itoa(i)), rv.Index(i).Interface())
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return
		}

		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

		for _, key := range keys {
			walk(builder, Join(path, key.String()), rv.MapIndex(key).Interface())
		}
	case reflect.String:
		builder.Set(path, StringValue(rv.String()))
	case reflect.Bool:
		builder.Set(path, StringValue(formatBool(rv.Bool())))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		builder.Set(path, StringValue(strconv.FormatInt(rv.Int(), 10)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		builder.Set(path, StringValue(strconv.FormatUint(rv.Uint(), 10)))
	case reflect.Float32, reflect.Float64:
		builder.Set(path, StringValue(strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())))
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive // only nillable kinds matter
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
