// Package metrics wraps a dedicated Prometheus registry with named metric
// tracking and a service-identity gauge. The registry is exposed through the
// operational server's /metrics endpoint; storage and querying are external
// concerns.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fyrsmithlabs/o11y/metadata"
)

// serviceInfoName is the registry slot used by the service-identity gauge.
const serviceInfoName = "service_info"

// Collector owns a Prometheus registry and tracks registered metrics by name
// so they can be replaced or removed individually.
type Collector struct {
	registry   *prometheus.Registry
	registerer prometheus.Registerer

	mu      sync.Mutex
	metrics map[string]prometheus.Collector
}

// NewCollector creates a collector with its own registry. Built-in collectors
// are attached per config; cfg.Prefix applies to metrics registered through
// Register, not to the built-ins.
func NewCollector(cfg Config) *Collector {
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.Prefix != "" {
		registerer = prometheus.WrapRegistererWithPrefix(cfg.Prefix, registry)
	}

	if cfg.EnableGoCollector {
		registry.MustRegister(collectors.NewGoCollector())
	}
	if cfg.EnablePlatformCollector {
		registry.MustRegister(collectors.NewBuildInfoCollector())
	}
	if cfg.EnableProcessCollector {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return &Collector{
		registry:   registry,
		registerer: registerer,
		metrics:    make(map[string]prometheus.Collector),
	}
}

// Registry returns the underlying registry, for exposition handlers.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Register adds a metric under the given name. Registering a second metric
// under an existing name replaces the previous one.
func (c *Collector) Register(name string, m prometheus.Collector) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.metrics[name]; ok {
		c.registry.Unregister(prev)
	}
	if err := c.registerer.Register(m); err != nil {
		return fmt.Errorf("registering metric %q: %w", name, err)
	}
	c.metrics[name] = m
	return nil
}

// Unregister removes the named metric. Unknown names are a no-op.
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.metrics[name]; ok {
		c.registry.Unregister(m)
		delete(c.metrics, name)
	}
}

// Clear removes every metric registered through Register. Built-in
// collectors stay.
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, m := range c.metrics {
		c.registry.Unregister(m)
		delete(c.metrics, name)
	}
}

// Len returns the number of tracked metrics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.metrics)
}

// CreateServiceInfoMetric synthesizes the service-identity gauge from
// discrete fields and registers it under "service_info". Pass empty commitSHA
// or buildTime to omit those labels.
func (c *Collector) CreateServiceInfoMetric(serviceName, serviceVersion, instanceID, commitSHA, buildTime string) (*prometheus.GaugeVec, error) {
	g := NewServiceInfoMetric(serviceName, serviceVersion, instanceID, commitSHA, buildTime)
	if err := c.Register(serviceInfoName, g); err != nil {
		return nil, err
	}
	return g, nil
}

// CreateServiceInfoMetricFromServiceInfo synthesizes the service-identity
// gauge from a descriptor. Commit and build-time labels are omitted when the
// descriptor carries the "unknown-dev" sentinel.
func (c *Collector) CreateServiceInfoMetricFromServiceInfo(info metadata.ServiceInfo) (*prometheus.GaugeVec, error) {
	return c.CreateServiceInfoMetric(
		info.Name,
		info.Version,
		info.InstanceID,
		dropSentinel(info.CommitSHA),
		dropSentinel(info.BuildTime),
	)
}

func dropSentinel(v string) string {
	if v == metadata.UnknownDev {
		return ""
	}
	return v
}

// NewServiceInfoMetric builds the unregistered service-identity gauge: value
// 1 with the identity encoded as labels. Label names: service, version,
// instance, plus commit and build_time when their values are non-empty.
func NewServiceInfoMetric(serviceName, serviceVersion, instanceID, commitSHA, buildTime string) *prometheus.GaugeVec {
	labels := []string{"service", "version", "instance"}
	values := []string{serviceName, serviceVersion, instanceID}
	if commitSHA != "" {
		labels = append(labels, "commit")
		values = append(values, commitSHA)
	}
	if buildTime != "" {
		labels = append(labels, "build_time")
		values = append(values, buildTime)
	}

	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: serviceInfoName,
		Help: "Service identity: always 1, with the identity carried in labels.",
	}, labels)
	g.WithLabelValues(values...).Set(1)
	return g
}
