package prometheus

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestMetricsExporter_RecordMethods(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("miniruntime", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordTaskSpawned("current_thread")
	exporter.RecordTaskSpawned("current_thread")
	exporter.RecordTaskPoll("current_thread", 250*time.Microsecond)
	exporter.RecordTaskCompleted("current_thread")
	exporter.RecordTaskPanic("current_thread", "panic")
	exporter.RecordWake("current_thread")
	exporter.RecordWake("current_thread")
	exporter.RecordWake("current_thread")
	exporter.RecordQueueDepth("current_thread", 7)

	spawned := testutil.ToFloat64(exporter.taskSpawnedTotal.WithLabelValues("current_thread"))
	if spawned != 2 {
		t.Fatalf("spawned total = %v, want 2", spawned)
	}

	completed := testutil.ToFloat64(exporter.taskCompletedTotal.WithLabelValues("current_thread"))
	if completed != 1 {
		t.Fatalf("completed total = %v, want 1", completed)
	}

	panicTotal := testutil.ToFloat64(exporter.taskPanicTotal.WithLabelValues("current_thread"))
	if panicTotal != 1 {
		t.Fatalf("panic total = %v, want 1", panicTotal)
	}

	wakes := testutil.ToFloat64(exporter.wakeTotal.WithLabelValues("current_thread"))
	if wakes != 3 {
		t.Fatalf("wake total = %v, want 3", wakes)
	}

	queueDepth := testutil.ToFloat64(exporter.queueDepth.WithLabelValues("current_thread"))
	if queueDepth != 7 {
		t.Fatalf("queue depth = %v, want 7", queueDepth)
	}

	histCount, err := histogramSampleCount(exporter.pollDurationSeconds.WithLabelValues("current_thread"))
	if err != nil {
		t.Fatalf("histogramSampleCount failed: %v", err)
	}
	if histCount != 1 {
		t.Fatalf("poll sample count = %d, want 1", histCount)
	}
}

func TestMetricsExporter_AlreadyRegisteredReuse(t *testing.T) {
	reg := prom.NewRegistry()
	first, err := NewMetricsExporter("miniruntime", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("first NewMetricsExporter failed: %v", err)
	}
	second, err := NewMetricsExporter("miniruntime", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("second NewMetricsExporter failed: %v", err)
	}

	first.RecordTaskPanic("current_thread", nil)
	second.RecordTaskPanic("current_thread", nil)

	got := testutil.ToFloat64(first.taskPanicTotal.WithLabelValues("current_thread"))
	if got != 2 {
		t.Fatalf("shared panic counter = %v, want 2", got)
	}
}

func TestMetricsExporter_EmptyLabelNormalized(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("miniruntime", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordWake("")

	got := testutil.ToFloat64(exporter.wakeTotal.WithLabelValues("unknown"))
	if got != 1 {
		t.Fatalf("wake total with fallback label = %v, want 1", got)
	}
}

func histogramSampleCount(observer prom.Observer) (uint64, error) {
	collector, ok := observer.(prom.Collector)
	if !ok {
		return 0, nil
	}

	metricCh := make(chan prom.Metric, 1)
	collector.Collect(metricCh)
	close(metricCh)
	for metric := range metricCh {
		msg := &dto.Metric{}
		if err := metric.Write(msg); err != nil {
			return 0, err
		}
		if msg.Histogram != nil {
			return msg.Histogram.GetSampleCount(), nil
		}
	}
	return 0, nil
}
