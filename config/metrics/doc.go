// Package metrics exports provider reload activity as Prometheus metrics.
package metrics
