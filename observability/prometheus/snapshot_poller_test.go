package prometheus

import (
	"context"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/volodymyrd/tokio-tutorial/core"
)

type schedulerStub struct {
	stats core.SchedulerStats
}

func (s schedulerStub) Stats() core.SchedulerStats { return s.stats }

func TestSnapshotPoller_CollectsSchedulerStats(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddScheduler("main", schedulerStub{stats: core.SchedulerStats{
		Flavor:    "current_thread",
		Spawned:   5,
		Completed: 4,
		Panicked:  1,
		Wakes:     9,
		Pending:   2,
		Running:   true,
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		spawned := testutil.ToFloat64(poller.schedulerSpawned.WithLabelValues("main", "current_thread"))
		pending := testutil.ToFloat64(poller.schedulerPending.WithLabelValues("main", "current_thread"))
		return spawned == 5 && pending == 2
	})

	if got := testutil.ToFloat64(poller.schedulerPanicked.WithLabelValues("main", "current_thread")); got != 1 {
		t.Fatalf("panicked gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(poller.schedulerWakes.WithLabelValues("main", "current_thread")); got != 9 {
		t.Fatalf("wakes gauge = %v, want 9", got)
	}
	if got := testutil.ToFloat64(poller.schedulerRunning.WithLabelValues("main", "current_thread")); got != 1 {
		t.Fatalf("running gauge = %v, want 1", got)
	}
}

func TestSnapshotPoller_RuntimeProvider(t *testing.T) {
	rt, err := core.NewCurrentThread().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	core.BlockOn(rt, context.Background(), core.Ready(struct{}{}))

	reg := prom.NewRegistry()
	poller, perr := NewSnapshotPoller(reg, 10*time.Millisecond)
	if perr != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", perr)
	}
	poller.AddScheduler("rt", rt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		running := testutil.ToFloat64(poller.schedulerRunning.WithLabelValues("rt", "current_thread"))
		return running == 0
	})
}

func TestSnapshotPoller_StartStop_Idempotent(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller.Start(ctx)
	poller.Start(ctx)
	poller.Stop()
	poller.Stop()
}

func assertEventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
