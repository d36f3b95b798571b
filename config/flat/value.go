package flat

import (
	"encoding/json"
	"fmt"
)

// Value is a configuration value that may be explicitly null.
// Valid is false for null values.
type Value struct {
	String string
	Valid  bool
}

// StringValue returns a non-null Value holding s.
func StringValue(s string) Value {
	return Value{String: s, Valid: true}
}

// Null returns a null Value.
func Null() Value {
	return Value{}
}

// Ptr returns the value as a string pointer, nil when null.
func (v Value) Ptr() *string {
	if !v.Valid {
		return nil
	}

	s := v.String

	return &s
}

// FromPtr converts a string pointer into a Value, nil becoming null.
func FromPtr(s *string) Value {
	if s == nil {
		return Null()
	}

	return StringValue(*s)
}

// MarshalJSON renders null values as JSON null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}

	data, err := json.Marshal(v.String)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}

	return data, nil
}

// UnmarshalJSON accepts a JSON string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null()

		return nil
	}

	var s string

	err := json.Unmarshal(data, &s)
	if err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}

	*v = StringValue(s)

	return nil
}
