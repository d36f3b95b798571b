package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
	"github.com/0xalexb/hjarta-config/config/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveReload(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	collector, err := metrics.New(registry)
	require.NoError(t, err)

	collector.ObserveReload("file", 10*time.Millisecond, nil)
	collector.ObserveReload("file", 20*time.Millisecond, nil)
	collector.ObserveReload("file", time.Millisecond, errors.New("boom"))

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	assert.ElementsMatch(t, []string{
		"hjarta_config_reloads_total",
		"hjarta_config_reload_duration_seconds",
		"hjarta_config_last_success_timestamp_seconds",
	}, names)

	count, err := testutil.GatherAndCount(registry, "hjarta_config_reloads_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per result")
}

func TestCollector_DoubleRegistrationFails(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	_, err := metrics.New(registry)
	require.NoError(t, err)

	_, err = metrics.New(registry)
	require.Error(t, err)
}

func TestCollector_AsProviderObserver(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	collector, err := metrics.New(registry)
	require.NoError(t, err)

	provider, err := config.NewProvider("memory",
		config.SourceFunc(func(context.Context) (flat.Mapping, error) {
			return flat.FromStrings(map[string]string{"a": "1"}), nil
		}),
		config.WithObserver(collector),
	)
	require.NoError(t, err)

	require.NoError(t, provider.Load(context.Background()))
	require.NoError(t, provider.Reload(context.Background()))

	count, err := testutil.GatherAndCount(registry, "hjarta_config_reloads_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
