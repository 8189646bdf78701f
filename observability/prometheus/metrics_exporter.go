package prometheus

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/volodymyrd/tokio-tutorial/core"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	PollDurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
type MetricsExporter struct {
	taskSpawnedTotal    *prom.CounterVec
	taskCompletedTotal  *prom.CounterVec
	taskPanicTotal      *prom.CounterVec
	wakeTotal           *prom.CounterVec
	pollDurationSeconds *prom.HistogramVec
	queueDepth          *prom.GaugeVec
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "miniruntime"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.PollDurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	spawnedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_spawned_total",
		Help:      "Total number of spawned tasks.",
	}, []string{"flavor"})
	completedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_completed_total",
		Help:      "Total number of finished tasks.",
	}, []string{"flavor"})
	panicVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_panic_total",
		Help:      "Total number of task panics.",
	}, []string{"flavor"})
	wakeVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "wake_total",
		Help:      "Total number of wakeup notifications.",
	}, []string{"flavor"})
	pollVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_duration_seconds",
		Help:      "Single task poll duration in seconds.",
		Buckets:   buckets,
	}, []string{"flavor"})
	queueDepthVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current run queue depth.",
	}, []string{"flavor"})

	var err error
	if spawnedVec, err = registerCollector(reg, spawnedVec); err != nil {
		return nil, err
	}
	if completedVec, err = registerCollector(reg, completedVec); err != nil {
		return nil, err
	}
	if panicVec, err = registerCollector(reg, panicVec); err != nil {
		return nil, err
	}
	if wakeVec, err = registerCollector(reg, wakeVec); err != nil {
		return nil, err
	}
	if pollVec, err = registerCollector(reg, pollVec); err != nil {
		return nil, err
	}
	if queueDepthVec, err = registerCollector(reg, queueDepthVec); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		taskSpawnedTotal:    spawnedVec,
		taskCompletedTotal:  completedVec,
		taskPanicTotal:      panicVec,
		wakeTotal:           wakeVec,
		pollDurationSeconds: pollVec,
		queueDepth:          queueDepthVec,
	}, nil
}

// RecordTaskSpawned records a spawned task.
func (m *MetricsExporter) RecordTaskSpawned(flavor string) {
	if m == nil {
		return
	}
	m.taskSpawnedTotal.WithLabelValues(normalizeLabel(flavor, "unknown")).Inc()
}

// RecordTaskPoll records a single task poll and its duration.
func (m *MetricsExporter) RecordTaskPoll(flavor string, duration time.Duration) {
	if m == nil {
		return
	}
	m.pollDurationSeconds.WithLabelValues(normalizeLabel(flavor, "unknown")).Observe(duration.Seconds())
}

// RecordTaskCompleted records a finished task.
func (m *MetricsExporter) RecordTaskCompleted(flavor string) {
	if m == nil {
		return
	}
	m.taskCompletedTotal.WithLabelValues(normalizeLabel(flavor, "unknown")).Inc()
}

// RecordTaskPanic records task panic events.
func (m *MetricsExporter) RecordTaskPanic(flavor string, panicInfo any) {
	if m == nil {
		return
	}
	m.taskPanicTotal.WithLabelValues(normalizeLabel(flavor, "unknown")).Inc()
}

// RecordWake records a wakeup notification.
func (m *MetricsExporter) RecordWake(flavor string) {
	if m == nil {
		return
	}
	m.wakeTotal.WithLabelValues(normalizeLabel(flavor, "unknown")).Inc()
}

// RecordQueueDepth records run queue depth.
func (m *MetricsExporter) RecordQueueDepth(flavor string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(normalizeLabel(flavor, "unknown")).Set(float64(depth))
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
