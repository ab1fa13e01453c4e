// Package promstats exports reactor scheduling counters to Prometheus.
package promstats

import (
	"github.com/delaneyj/reactref/reactor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "reactref").
	Namespace string

	// Subsystem is the metrics subsystem (default: "scheduler").
	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactref",
		Subsystem: "scheduler",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector implements reactor.Stats. Pending tracks flushes that were
// scheduled and have neither run nor been cancelled.
type Collector struct {
	scheduled *prometheus.CounterVec
	coalesced *prometheus.CounterVec
	flushed   *prometheus.CounterVec
	cancelled *prometheus.CounterVec
	pending   *prometheus.GaugeVec
}

var _ reactor.Stats = (*Collector)(nil)

// New registers the collector's metrics. It panics if they are already
// registered with the chosen registry.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, []string{"kind"})
	}

	return &Collector{
		scheduled: counter("scheduled_total", "Deferred flushes scheduled"),
		coalesced: counter("coalesced_total", "Triggers absorbed by an already pending flush"),
		flushed:   counter("flushed_total", "Deferred flushes that ran"),
		cancelled: counter("cancelled_total", "Pending flushes cancelled by teardown"),
		pending: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending",
			Help:        "Flushes currently waiting for the scheduler",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

func (c *Collector) Scheduled(kind reactor.Kind) {
	c.scheduled.WithLabelValues(string(kind)).Inc()
	c.pending.WithLabelValues(string(kind)).Inc()
}

func (c *Collector) Coalesced(kind reactor.Kind) {
	c.coalesced.WithLabelValues(string(kind)).Inc()
}

func (c *Collector) Flushed(kind reactor.Kind) {
	c.flushed.WithLabelValues(string(kind)).Inc()
	c.pending.WithLabelValues(string(kind)).Dec()
}

func (c *Collector) Cancelled(kind reactor.Kind) {
	c.cancelled.WithLabelValues(string(kind)).Inc()
	c.pending.WithLabelValues(string(kind)).Dec()
}
