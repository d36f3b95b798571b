package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelSettings struct {
	UseMail            bool
	PreferredChannels  []string
	DoNotDisturbPeriod time.Duration
	LastUpdated        *time.Time
}

type pagingSettings struct {
	AppName         string `validate:"required"`
	MaxItemsPerPage int    `config:"max_items"`
}

func (s *pagingSettings) SetDefaults() bool {
	if s.MaxItemsPerPage != 0 {
		return false
	}

	s.MaxItemsPerPage = 10

	return true
}

type rejectingSettings struct {
	Name string
}

var errRejected = errors.New("rejected")

func (s *rejectingSettings) Validate() error {
	if s.Name == "bad" {
		return errRejected
	}

	return nil
}

func rootFrom(t *testing.T, values map[string]*string) *config.Root {
	t.Helper()

	provider := newProvider(t, "values", config.SourceFunc(func(context.Context) (flat.Mapping, error) {
		return flat.FromNullable(values), nil
	}))

	return buildRoot(t, provider)
}

func ptr(s string) *string {
	return &s
}

func TestBind_ConvertsFlatStrings(t *testing.T) {
	t.Parallel()

	root := rootFrom(t, map[string]*string{
		"Notifications:UserSettings:UseMail":             ptr("True"),
		"Notifications:UserSettings:PreferredChannels:0": ptr("Email"),
		"Notifications:UserSettings:PreferredChannels:1": ptr("SMS"),
		"Notifications:UserSettings:DoNotDisturbPeriod":  ptr("8h0m0s"),
		"Notifications:UserSettings:LastUpdated":         nil,
	})

	settings, err := config.Bind(root, "Notifications:UserSettings", &channelSettings{})
	require.NoError(t, err)

	assert.True(t, settings.UseMail)
	assert.Equal(t, []string{"Email", "SMS"}, settings.PreferredChannels)
	assert.Equal(t, 8*time.Hour, settings.DoNotDisturbPeriod)
	assert.Nil(t, settings.LastUpdated)
}

func TestBind_DefaultsAndTags(t *testing.T) {
	t.Parallel()

	root := rootFrom(t, map[string]*string{
		"General:AppName": ptr("demo"),
	})

	settings, err := config.Bind(root, "General", &pagingSettings{})
	require.NoError(t, err)
	assert.Equal(t, "demo", settings.AppName)
	assert.Equal(t, 10, settings.MaxItemsPerPage)

	root = rootFrom(t, map[string]*string{
		"General:AppName":   ptr("demo"),
		"General:max_items": ptr("25"),
	})

	settings, err = config.Bind(root, "General", &pagingSettings{})
	require.NoError(t, err)
	assert.Equal(t, 25, settings.MaxItemsPerPage)
}

func TestBind_ValidationErrors(t *testing.T) {
	t.Parallel()

	root := rootFrom(t, map[string]*string{
		"General:max_items": ptr("5"),
		"Named:Name":        ptr("bad"),
	})

	_, err := config.Bind(root, "General", &pagingSettings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AppName")

	_, err = config.Bind(root, "Named", &rejectingSettings{})
	require.ErrorIs(t, err, errRejected)
}

func TestBind_MissingSectionKeepsTarget(t *testing.T) {
	t.Parallel()

	root := rootFrom(t, map[string]*string{})

	settings, err := config.Bind(root, "Named", &rejectingSettings{Name: "kept"})
	require.NoError(t, err)
	assert.Equal(t, "kept", settings.Name)
}

func TestBind_NilTarget(t *testing.T) {
	t.Parallel()

	root := rootFrom(t, map[string]*string{})

	_, err := config.Bind[rejectingSettings](root, "Named", nil)
	require.ErrorIs(t, err, config.ErrNilTarget)
}

func TestBind_ConversionError(t *testing.T) {
	t.Parallel()

	root := rootFrom(t, map[string]*string{
		"General:AppName":   ptr("demo"),
		"General:max_items": ptr("many"),
	})

	_, err := config.Bind(root, "General", &pagingSettings{})
	require.Error(t, err)
}

func TestBind_RoundTripWithoutArrays(t *testing.T) {
	t.Parallel()

	type inner struct {
		Theme           string
		DefaultLanguage string
	}

	type outer struct {
		Enabled bool
		Count   int
		User    inner
	}

	original := map[string]any{
		"Enabled": true,
		"Count":   3,
		"User": map[string]any{
			"Theme":           "light",
			"DefaultLanguage": "en",
		},
	}

	provider := newProvider(t, "tree", config.SourceFunc(func(context.Context) (flat.Mapping, error) {
		return flat.Flatten(original, "Root"), nil
	}))
	root := buildRoot(t, provider)

	bound, err := config.Bind(root, "Root", &outer{})
	require.NoError(t, err)
	assert.Equal(t, &outer{Enabled: true, Count: 3, User: inner{Theme: "light", DefaultLanguage: "en"}}, bound)
}

func TestProvide(t *testing.T) {
	t.Parallel()

	root := rootFrom(t, map[string]*string{"General:AppName": ptr("demo")})

	settings, err := config.Provide[pagingSettings]("General")(root)
	require.NoError(t, err)
	assert.Equal(t, "demo", settings.AppName)
}
