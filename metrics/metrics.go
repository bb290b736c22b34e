// Package metrics exposes Prometheus counters for the travel-aware
// scheduling engine. A nil *Recorder is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels shared by the counters.
const (
	ResultOK          = "ok"
	ResultNotFound    = "not_found"
	ResultUnavailable = "unavailable"
	ResultCacheHit    = "cache_hit"
)

// Recorder holds the engine's counters.
type Recorder struct {
	estimates *prometheus.CounterVec
	geocodes  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

// New registers the counters on reg. A nil registerer defaults to the
// global Prometheus registerer.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_estimates_total",
		Help: "Travel time estimates requested from the routing provider",
	}, []string{"mode", "result"})
	geocodes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_requests_total",
		Help: "Address lookups by outcome",
	}, []string{"result"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_buffer_fallbacks_total",
		Help: "Buffers computed from the fixed per-mode fallback table",
	}, []string{"mode", "reason"})

	var err error
	if estimates, err = register(reg, estimates); err != nil {
		return nil, err
	}
	if geocodes, err = register(reg, geocodes); err != nil {
		return nil, err
	}
	if fallbacks, err = register(reg, fallbacks); err != nil {
		return nil, err
	}
	return &Recorder{estimates: estimates, geocodes: geocodes, fallbacks: fallbacks}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec), nil
		}
		return nil, err
	}
	return c, nil
}

// Estimate counts one routing call.
func (r *Recorder) Estimate(mode, result string) {
	if r == nil {
		return
	}
	r.estimates.WithLabelValues(mode, result).Inc()
}

// Geocode counts one address lookup.
func (r *Recorder) Geocode(result string) {
	if r == nil {
		return
	}
	r.geocodes.WithLabelValues(result).Inc()
}

// Fallback counts one buffer that used the fixed fallback duration.
func (r *Recorder) Fallback(mode, reason string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(mode, reason).Inc()
}
