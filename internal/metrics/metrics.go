package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "schedule"

// Metrics holds the collectors for store calls, change events and live grid
// sessions. A nil *Metrics is valid and records nothing.
type Metrics struct {
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	feedEvents   *prometheus.CounterVec
	resyncs      *prometheus.CounterVec
	liveSessions prometheus.Gauge
}

func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Entry store calls by operation and result.",
		}, []string{"op", "result"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_seconds",
			Help:      "Entry store call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		feedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_events_total",
			Help:      "Change events published by source and type.",
		}, []string{"source", "type"}),
		resyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_resyncs_total",
			Help:      "Full grid refetches by result.",
		}, []string{"result"}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Open live grid sessions.",
		}),
	}

	var err error
	if m.storeOps, err = register(reg, m.storeOps); err != nil {
		return nil, err
	}
	if m.storeLatency, err = register(reg, m.storeLatency); err != nil {
		return nil, err
	}
	if m.feedEvents, err = register(reg, m.feedEvents); err != nil {
		return nil, err
	}
	if m.resyncs, err = register(reg, m.resyncs); err != nil {
		return nil, err
	}
	if m.liveSessions, err = register(reg, m.liveSessions); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg. If an identical collector is already registered,
// that one is returned instead.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return c, err
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveStore records one store call.
func (m *Metrics) ObserveStore(op string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(op, result(err)).Inc()
	m.storeLatency.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) FeedEvent(source, op string) {
	if m == nil {
		return
	}
	if source == "" {
		source = "local"
	}
	m.feedEvents.WithLabelValues(source, op).Inc()
}

func (m *Metrics) Resync(err error) {
	if m == nil {
		return
	}
	m.resyncs.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.liveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.liveSessions.Dec()
}
