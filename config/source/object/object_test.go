package object_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
	"github.com/0xalexb/hjarta-config/config/source/object"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userSettings struct {
	UseMail   bool
	Channels  []string
	Quiet     time.Duration
	UserID    *uuid.UUID
	callbacks func()
}

func (u userSettings) Fields() []flat.Field {
	var id any
	if u.UserID != nil {
		id = *u.UserID
	}

	return []flat.Field{
		{Name: "UseMail", Value: u.UseMail},
		{Name: "PreferredChannels", Value: u.Channels},
		{Name: "DoNotDisturbPeriod", Value: u.Quiet},
		{Name: "UserId", Value: id},
		{Name: "Callbacks", Value: u.callbacks},
	}
}

type notifications struct {
	Enabled bool
	User    userSettings
}

func (n notifications) Fields() []flat.Field {
	return []flat.Field{
		{Name: "Enabled", Value: n.Enabled},
		{Name: "UserSettings", Value: n.User},
	}
}

func TestSource_FlattensDeclaredFields(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6F9619FF-8B86-D011-B42D-00C04FC964FF")

	src := object.Static(notifications{
		Enabled: true,
		User: userSettings{
			UseMail:  false,
			Channels: []string{"Email", "SMS"},
			Quiet:    8 * time.Hour,
			UserID:   &id,
		},
	}, object.WithPrefix("Notifications"))

	data, err := src.Load(context.Background())
	require.NoError(t, err)

	s := func(v string) *string { return &v }

	assert.Equal(t, map[string]*string{
		"Notifications:Enabled":                          s("True"),
		"Notifications:UserSettings:UseMail":             s("False"),
		"Notifications:UserSettings:PreferredChannels:0": s("Email"),
		"Notifications:UserSettings:PreferredChannels:1": s("SMS"),
		"Notifications:UserSettings:DoNotDisturbPeriod":  s("8h0m0s"),
		"Notifications:UserSettings:UserId":              s("6f9619ff-8b86-d011-b42d-00c04fc964ff"),
		"Notifications:UserSettings:Callbacks":           nil,
	}, data.Nullable())
}

func TestSource_FactoryCalledOnEveryLoad(t *testing.T) {
	t.Parallel()

	var count atomic.Int32

	src, err := object.New(func(context.Context) (any, error) {
		return map[string]any{"LoadCount": count.Add(1)}, nil
	}, object.WithPrefix("General"))
	require.NoError(t, err)

	provider, err := config.NewProvider("object", src)
	require.NoError(t, err)
	require.NoError(t, provider.Load(context.Background()))
	require.NoError(t, provider.Reload(context.Background()))

	value, ok := provider.Data().Lookup("General:LoadCount")
	require.True(t, ok)
	assert.Equal(t, "2", value.String)
}

func TestSource_FactoryError(t *testing.T) {
	t.Parallel()

	errFactory := errors.New("factory failed")

	src, err := object.New(func(context.Context) (any, error) { return nil, errFactory })
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	require.ErrorIs(t, err, errFactory)
}

func TestNew_NilFactory(t *testing.T) {
	t.Parallel()

	_, err := object.New(nil)
	require.ErrorIs(t, err, object.ErrNilFactory)
	require.ErrorIs(t, err, config.ErrMisconfigured)
}
