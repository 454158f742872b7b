// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "collectionsync"

// Collector is a prometheus.Collector that collects metrics about the calls
// made to the remote systems during a run.
type Collector struct {
	calls        *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	callErrors   *prometheus.CounterVec
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "remote_calls_total",
				Help:      "The number of calls made to remote systems.",
			}, []string{"system", "method", "code"},
		),
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "remote_call_duration_seconds",
				Help:      "The round trip time of calls made to remote systems.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			}, []string{"system", "method"},
		),
		callErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "remote_call_errors_total",
				Help:      "The number of calls to remote systems that failed before a response was received.",
			}, []string{"system", "method"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.calls.Describe(ch)
	c.callDuration.Describe(ch)
	c.callErrors.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.calls.Collect(ch)
	c.callDuration.Collect(ch)
	c.callErrors.Collect(ch)
}

// RecorderFor returns a request recorder that labels its observations with
// the given remote system.
func (c *Collector) RecorderFor(system string) *Recorder {
	return &Recorder{system: system, collector: c}
}

// Recorder records the outcome of requests to a single remote system.
type Recorder struct {
	system    string
	collector *Collector
}

// Record an outgoing request which produced an http.Response.
func (r *Recorder) Record(method string, _ *url.URL, res *http.Response, rtt time.Duration) {
	r.collector.calls.WithLabelValues(r.system, method, strconv.Itoa(res.StatusCode)).Inc()
	r.collector.callDuration.WithLabelValues(r.system, method).Observe(rtt.Seconds())
}

// RecordError records an outgoing request which returned back an error.
func (r *Recorder) RecordError(method string, _ *url.URL, _ error) {
	r.collector.callErrors.WithLabelValues(r.system, method).Inc()
}

// WriteTextfile registers the collector with a fresh registry and writes
// its metrics to path in the textfile collector format.
func WriteTextfile(path string, collector prometheus.Collector) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collector); err != nil {
		return errors.Annotate(err, "registering metrics collector")
	}
	return errors.Annotatef(prometheus.WriteToTextfile(path, registry), "writing metrics to %q", path)
}
