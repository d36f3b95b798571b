package flat_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-config/config/flat"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userNotifications struct {
	UseMail           bool
	PreferredChannels []string
	DoNotDisturb      *time.Duration
}

func (u userNotifications) Fields() []flat.Field {
	return []flat.Field{
		{Name: "UseMail", Value: u.UseMail},
		{Name: "PreferredChannels", Value: u.PreferredChannels},
		{Name: "DoNotDisturbPeriod", Value: u.DoNotDisturb},
	}
}

type notifications struct {
	Enabled      bool
	UserSettings *userNotifications
}

func (n *notifications) Fields() []flat.Field {
	return []flat.Field{
		{Name: "Enabled", Value: n.Enabled},
		{Name: "UserSettings", Value: n.UserSettings},
	}
}

type opaque struct {
	Hidden string
}

type theme string

func requireEntries(t *testing.T, expected map[string]*string, mapping flat.Mapping) {
	t.Helper()

	require.Equal(t, len(expected), mapping.Len(), "entries: %v", mapping.Nullable())

	for path, want := range expected {
		got, ok := mapping.Lookup(path)
		require.True(t, ok, "path %q should be present", path)
		assert.Equal(t, flat.FromPtr(want), got, "path %q", path)
	}
}

func str(s string) *string {
	return &s
}

func TestFlatten_NestedObject(t *testing.T) {
	t.Parallel()

	value := map[string]any{
		"Notifications": map[string]any{
			"Enabled": true,
			"UserSettings": map[string]any{
				"UseMail": false,
			},
		},
	}

	requireEntries(t, map[string]*string{
		"Notifications:Enabled":              str("True"),
		"Notifications:UserSettings:UseMail": str("False"),
	}, flat.Flatten(value, ""))
}

func TestFlatten_ArrayUnderPrefix(t *testing.T) {
	t.Parallel()

	requireEntries(t, map[string]*string{
		"Hosts:0": str("a"),
		"Hosts:1": str("b"),
	}, flat.Flatten([]string{"a", "b"}, "Hosts"))
}

func TestFlatten_Fielder(t *testing.T) {
	t.Parallel()

	dnd := 8 * time.Hour
	value := &notifications{
		Enabled: true,
		UserSettings: &userNotifications{
			UseMail:           false,
			PreferredChannels: []string{"Email", "SMS"},
			DoNotDisturb:      &dnd,
		},
	}

	requireEntries(t, map[string]*string{
		"Notifications:Enabled":                         str("True"),
		"Notifications:UserSettings:UseMail":            str("False"),
		"Notifications:UserSettings:PreferredChannels:0": str("Email"),
		"Notifications:UserSettings:PreferredChannels:1": str("SMS"),
		"Notifications:UserSettings:DoNotDisturbPeriod":  str("8h0m0s"),
	}, flat.Flatten(value, "Notifications"))
}

func TestFlatten_NullMembersArePresent(t *testing.T) {
	t.Parallel()

	value := &notifications{Enabled: false, UserSettings: nil}
	mapping := flat.Flatten(value, "")

	got, ok := mapping.Lookup("UserSettings")
	require.True(t, ok)
	assert.False(t, got.Valid)

	_, ok = mapping.Lookup("Missing")
	assert.False(t, ok)
}

func TestFlatten_Scalars(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	link, err := url.Parse("https://example.com/app")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "string", value: "text", expected: "text"},
		{name: "true", value: true, expected: "True"},
		{name: "false", value: false, expected: "False"},
		{name: "int", value: 50, expected: "50"},
		{name: "negative int64", value: int64(-7), expected: "-7"},
		{name: "uint8", value: uint8(255), expected: "255"},
		{name: "float", value: 3.25, expected: "3.25"},
		{name: "duration", value: 90 * time.Second, expected: "1m30s"},
		{name: "time", value: stamp, expected: "2026-01-02T03:04:05Z"},
		{name: "uuid", value: id, expected: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{name: "stringer", value: link, expected: "https://example.com/app"},
		{name: "named string", value: theme("dark"), expected: "dark"},
		{name: "pointer to string", value: str("pointed"), expected: "pointed"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mapping := flat.Flatten(map[string]any{"Key": testCase.value}, "")

			got, ok := mapping.Lookup("Key")
			require.True(t, ok)
			assert.Equal(t, flat.StringValue(testCase.expected), got)
		})
	}
}

func TestFlatten_RootPrimitiveUsesPrefix(t *testing.T) {
	t.Parallel()

	requireEntries(t, map[string]*string{"": str("42")}, flat.Flatten(42, ""))
	requireEntries(t, map[string]*string{"Answer": str("42")}, flat.Flatten(42, "Answer"))
	requireEntries(t, map[string]*string{"Nothing": nil}, flat.Flatten(nil, "Nothing"))
}

func TestFlatten_SkipsUnsupportedKinds(t *testing.T) {
	t.Parallel()

	mapping := flat.Flatten(map[string]any{
		"Kept":    "yes",
		"Struct":  opaque{Hidden: "no"},
		"Channel": make(chan int),
	}, "")

	requireEntries(t, map[string]*string{"Kept": str("yes")}, mapping)
}

func TestFlatten_EmptyContainersProduceNoEntries(t *testing.T) {
	t.Parallel()

	mapping := flat.Flatten(map[string]any{
		"Empty":  map[string]any{},
		"List":   []any{},
		"Values": map[string]int{"b": 2, "a": 1},
	}, "")

	requireEntries(t, map[string]*string{
		"Values:a": str("1"),
		"Values:b": str("2"),
	}, mapping)
}

func TestFlatten_CaseInsensitiveLastWriterWins(t *testing.T) {
	t.Parallel()

	builder := flat.NewBuilder()
	builder.Set("App:Name", flat.StringValue("first"))
	builder.Set("app:name", flat.StringValue("second"))

	mapping := builder.Mapping()
	require.Equal(t, 1, mapping.Len())

	got, ok := mapping.Lookup("APP:NAME")
	require.True(t, ok)
	assert.Equal(t, "second", got.String)
	assert.Equal(t, "app:name", mapping.Entries()[0].Path)
}

func TestFlattenJSON(t *testing.T) {
	t.Parallel()

	mapping, err := flat.FlattenJSON([]byte(`{"a":{"b":[1,2.50,null]},"c":"d","e":true}`), "Root")
	require.NoError(t, err)

	requireEntries(t, map[string]*string{
		"Root:a:b:0": str("1"),
		"Root:a:b:1": str("2.50"),
		"Root:a:b:2": nil,
		"Root:c":     str("d"),
		"Root:e":     str("True"),
	}, mapping)
}

func TestFlattenJSON_Malformed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
	}{
		{name: "unterminated", data: `{"a":`},
		{name: "not json", data: `plain text`},
		{name: "trailing data", data: `{"a":1} {"b":2}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := flat.FlattenJSON([]byte(testCase.data), "Key")
			require.Error(t, err)

			var parseErr *flat.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "Key", parseErr.Key)
		})
	}
}
