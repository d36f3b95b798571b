package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "hjarta"
	subsystem = "config"

	resultSuccess = "success"
	resultFailure = "failure"
)

// Collector records provider reload attempts. It implements config.ReloadObserver.
type Collector struct {
	reloads  *prometheus.CounterVec // Reload attempts by provider and result
	duration *prometheus.HistogramVec
	lastOK   *prometheus.GaugeVec // Unix time of the last successful reload
}

// New creates a Collector and registers its metrics with registerer.
// A nil registerer uses prometheus.DefaultRegisterer.
func New(registerer prometheus.Registerer) (*Collector, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	c := &Collector{
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reloads_total",
			Help:      "Total number of provider load and reload attempts",
		}, []string{"provider", "result"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reload_duration_seconds",
			Help:      "Time spent fetching provider data",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),

		lastOK: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful provider reload",
		}, []string{"provider"}),
	}

	for _, collector := range []prometheus.Collector{c.reloads, c.duration, c.lastOK} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return c, nil
}

// ObserveReload records one load or reload attempt.
func (c *Collector) ObserveReload(provider string, duration time.Duration, err error) {
	c.duration.WithLabelValues(provider).Observe(duration.Seconds())

	if err != nil {
		c.reloads.WithLabelValues(provider, resultFailure).Inc()

		return
	}

	c.reloads.WithLabelValues(provider, resultSuccess).Inc()
	c.lastOK.WithLabelValues(provider).SetToCurrentTime()
}
