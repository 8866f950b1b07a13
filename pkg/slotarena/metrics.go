package slotarena

import "github.com/prometheus/client_golang/prometheus"

// PrometheusRegisterer is the subset of *prometheus.Registry a container
// needs to register its collectors, accepted so callers can pass either
// prometheus.DefaultRegisterer or a registry scoped to their own process.
type PrometheusRegisterer interface {
	MustRegister(...prometheus.Collector)
}

// metricsSink abstracts the observability calls a container makes on its
// hot paths, mirroring arena-cache's pkg/metrics.go metricsSink: a no-op
// implementation for containers that never opt in, and a Prometheus-backed
// one for those that do, so Insert/Remove/Get never branch on whether
// metrics are enabled.
type metricsSink interface {
	setOccupied(n int)
	setCapacity(n int)
	setFreelistRuns(n int)
	incGrowth()
	incRejected()
}

type noopMetrics struct{}

func (noopMetrics) setOccupied(int)     {}
func (noopMetrics) setCapacity(int)     {}
func (noopMetrics) setFreelistRuns(int) {}
func (noopMetrics) incGrowth()          {}
func (noopMetrics) incRejected()        {}

type promMetrics struct {
	occupied     prometheus.Gauge
	capacity     prometheus.Gauge
	freelistRuns prometheus.Gauge
	growths      prometheus.Counter
	rejected     prometheus.Counter
}

func newPromMetrics(reg PrometheusRegisterer, namespace, subsystem string) metricsSink {
	m := &promMetrics{
		occupied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "occupied_slots",
			Help:      "Number of currently live elements in the container.",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "capacity_slots",
			Help:      "Size of the container's backing allocation.",
		}),
		freelistRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "freelist_runs",
			Help:      "Number of disjoint vacant-slot runs currently linked in the freelist.",
		}),
		growths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "growths_total",
			Help:      "Number of times the container's backing storage has grown.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_handles_total",
			Help:      "Number of handle validations that failed (stale, cross-container, or absent).",
		}),
	}
	reg.MustRegister(m.occupied, m.capacity, m.freelistRuns, m.growths, m.rejected)
	return m
}

func (m *promMetrics) setOccupied(n int)     { m.occupied.Set(float64(n)) }
func (m *promMetrics) setCapacity(n int)     { m.capacity.Set(float64(n)) }
func (m *promMetrics) setFreelistRuns(n int) { m.freelistRuns.Set(float64(n)) }
func (m *promMetrics) incGrowth()            { m.growths.Inc() }
func (m *promMetrics) incRejected()          { m.rejected.Inc() }
