package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records solver runs in Prometheus metrics.
type PromSink struct {
	solves      *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	instances   *prometheus.CounterVec
	mismatches  *prometheus.CounterVec
}

// NewPromSink registers solver metrics on reg. If reg is nil, the default
// registerer is used. Collectors that are already registered are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maintshop_solves_total",
		Help: "Total number of solver calls",
	}, []string{"solver"})
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maintshop_evaluations_total",
		Help: "Sequence evaluations (brute) or DP transitions (dp)",
	}, []string{"solver"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maintshop_solve_duration_seconds",
		Help:    "Wall time of one solver call",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"solver"})
	instances := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maintshop_instances_total",
		Help: "Random instances checked by the differential harness",
	}, []string{"jobs"})
	mismatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maintshop_mismatches_total",
		Help: "Instances on which brute force and DP disagreed",
	}, []string{"jobs"})

	var err error
	if solves, err = register(reg, solves); err != nil {
		return nil, err
	}
	if evaluations, err = register(reg, evaluations); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if instances, err = register(reg, instances); err != nil {
		return nil, err
	}
	if mismatches, err = register(reg, mismatches); err != nil {
		return nil, err
	}
	return &PromSink{
		solves:      solves,
		evaluations: evaluations,
		latency:     latency,
		instances:   instances,
		mismatches:  mismatches,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (s *PromSink) RecordSolve(solver string, d time.Duration, evaluations int) {
	s.solves.WithLabelValues(solver).Inc()
	s.evaluations.WithLabelValues(solver).Add(float64(evaluations))
	s.latency.WithLabelValues(solver).Observe(d.Seconds())
}

func (s *PromSink) RecordInstance(jobs int) {
	s.instances.WithLabelValues(strconv.Itoa(jobs)).Inc()
}

func (s *PromSink) RecordMismatch(jobs int) {
	s.mismatches.WithLabelValues(strconv.Itoa(jobs)).Inc()
}

// WriteTextfile dumps everything gathered by g in the text exposition format,
// for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
