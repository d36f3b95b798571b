package postgres_test

import (
	"context"
	"testing"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/source/rows"
	"github.com/0xalexb/hjarta-config/config/store"
	"github.com/0xalexb/hjarta-config/config/store/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *postgres.Store {
	t.Helper()

	pool := getSharedTestDatabase(t)

	s, err := postgres.New(pool, postgres.WithTable("settings_"+getRandomString(t)))
	require.NoError(t, err)

	require.NoError(t, s.Migrate(context.Background()))

	return s
}

func TestNew_InvalidTableName(t *testing.T) {
	t.Parallel()

	_, err := postgres.New(nil, postgres.WithTable("Bad"))
	require.ErrorIs(t, err, store.ErrInvalidTableName)
}

func TestStore_UpsertRowsDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.Upsert(ctx, "User", `{"Theme": "light"}`))
	require.NoError(t, s.Upsert(ctx, "General", `{"AppName": "demo"}`))
	require.NoError(t, s.Upsert(ctx, "User", `{"Theme": "dark"}`))

	list, err := s.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []rows.Row{
		{Key: "General", Value: `{"AppName": "demo"}`},
		{Key: "User", Value: `{"Theme": "dark"}`},
	}, list)

	require.NoError(t, s.Delete(ctx, "General"))

	list, err = s.Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.NoError(t, s.Ping(ctx))
}

func TestStore_AsConfigurationSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.Upsert(ctx, "General", `{"AppName": "remote", "MaxItemsPerPage": 50}`))
	require.NoError(t, s.Upsert(ctx, "User:Theme", `null`))

	reader, err := rows.FromReader(s)
	require.NoError(t, err)

	src, err := rows.NewSource(reader)
	require.NoError(t, err)

	provider, err := config.NewProvider("postgres", src)
	require.NoError(t, err)

	root, err := config.NewBuilder().Add(provider).Build(ctx)
	require.NoError(t, err)

	t.Cleanup(func() { _ = root.Shutdown(ctx) })

	name, ok := root.Value("General:AppName")
	require.True(t, ok)
	assert.Equal(t, "remote", name)

	theme, ok := root.Get("User:Theme")
	require.True(t, ok)
	assert.False(t, theme.Valid)
}
