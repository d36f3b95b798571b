package rows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
	"github.com/0xalexb/hjarta-config/config/source/rows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReader []rows.Row

func (r staticReader) Rows(context.Context) ([]rows.Row, error) {
	return r, nil
}

type failingReader struct{}

var errDatabase = errors.New("database down")

func (failingReader) Rows(context.Context) ([]rows.Row, error) {
	return nil, errDatabase
}

func s(v string) *string {
	return &v
}

func TestFromReader_PerRowRules(t *testing.T) {
	t.Parallel()

	store, err := rows.FromReader(staticReader{
		{Key: "Notifications", Value: `{"Enabled": true, "UserSettings": {"PreferredChannels": ["Email", "SMS"]}}`},
		{Key: "Hosts", Value: `["a", "b"]`},
		{Key: "General:MaxItemsPerPage", Value: `10`},
		{Key: "General:AppName", Value: `"demo"`},
		{Key: "User:Theme", Value: `null`},
		{Key: "Blank", Value: "   "},
		{Key: "Broken", Value: `{"a":`},
		{Key: "Plain", Value: `not json at all`},
	})
	require.NoError(t, err)

	values, err := store.LoadConfiguration(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]*string{
		"Notifications:Enabled":                          s("True"),
		"Notifications:UserSettings:PreferredChannels:0": s("Email"),
		"Notifications:UserSettings:PreferredChannels:1": s("SMS"),
		"Hosts:0":                 s("a"),
		"Hosts:1":                 s("b"),
		"General:MaxItemsPerPage": s("10"),
		"General:AppName":         s("demo"),
		"User:Theme":              nil,
		"Blank":                   s(""),
		"Broken":                  s(`{"a":`),
		"Plain":                   s("not json at all"),
	}, values)
}

func TestFlattenRow_ReportsParseError(t *testing.T) {
	t.Parallel()

	builder := flat.NewBuilder()

	err := rows.FlattenRow(builder, rows.Row{Key: "Broken", Value: "{"})

	var parseErr *flat.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Broken", parseErr.Key)

	value, ok := builder.Mapping().Lookup("Broken")
	require.True(t, ok)
	assert.Equal(t, "{", value.String)
}

func TestFromReader_LaterRowWins(t *testing.T) {
	t.Parallel()

	store, err := rows.FromReader(staticReader{
		{Key: "General", Value: `{"AppName": "from-object"}`},
		{Key: "General:AppName", Value: `"from-row"`},
	})
	require.NoError(t, err)

	values, err := store.LoadConfiguration(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]*string{"General:AppName": s("from-row")}, values)
}

func TestFromReader_ReaderError(t *testing.T) {
	t.Parallel()

	store, err := rows.FromReader(failingReader{})
	require.NoError(t, err)

	_, err = store.LoadConfiguration(context.Background())
	require.ErrorIs(t, err, errDatabase)
}

func TestSource_PassThrough(t *testing.T) {
	t.Parallel()

	src, err := rows.NewSource(rows.StoreFunc(func(context.Context) (map[string]*string, error) {
		return map[string]*string{"General:AppName": s("remote"), "User:Theme": nil}, nil
	}))
	require.NoError(t, err)

	data, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]*string{"General:AppName": s("remote"), "User:Theme": nil}, data.Nullable())
}

func TestSource_FetchErrorKeepsProviderData(t *testing.T) {
	t.Parallel()

	fail := false

	src, err := rows.NewSource(rows.StoreFunc(func(context.Context) (map[string]*string, error) {
		if fail {
			return nil, errDatabase
		}

		return map[string]*string{"a": s("1")}, nil
	}))
	require.NoError(t, err)

	provider, err := config.NewProvider("rows", src)
	require.NoError(t, err)
	require.NoError(t, provider.Load(context.Background()))

	fail = true

	err = provider.Reload(context.Background())
	require.ErrorIs(t, err, errDatabase)

	value, ok := provider.Data().Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "1", value.String)
}

func TestConstructors_Validation(t *testing.T) {
	t.Parallel()

	_, err := rows.NewSource(nil)
	require.ErrorIs(t, err, rows.ErrNilStore)

	_, err = rows.FromReader(nil)
	require.ErrorIs(t, err, rows.ErrNilReader)
	require.ErrorIs(t, err, config.ErrMisconfigured)
}
