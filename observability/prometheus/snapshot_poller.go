package prometheus

import (
	"context"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/volodymyrd/tokio-tutorial/core"
)

// SchedulerSnapshotProvider provides current scheduler stats snapshots.
// Both *core.Runtime and *core.Handle satisfy it.
type SchedulerSnapshotProvider interface {
	Stats() core.SchedulerStats
}

// SnapshotPoller periodically exports scheduler Stats() snapshots into
// Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	schedulersMu sync.RWMutex
	schedulers   map[string]SchedulerSnapshotProvider

	schedulerSpawned   *prom.GaugeVec
	schedulerCompleted *prom.GaugeVec
	schedulerPanicked  *prom.GaugeVec
	schedulerWakes     *prom.GaugeVec
	schedulerPending   *prom.GaugeVec
	schedulerRunning   *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	spawned := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "miniruntime",
		Name:      "scheduler_spawned",
		Help:      "Spawned task count snapshot per scheduler.",
	}, []string{"scheduler", "flavor"})
	completed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "miniruntime",
		Name:      "scheduler_completed",
		Help:      "Finished task count snapshot per scheduler.",
	}, []string{"scheduler", "flavor"})
	panicked := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "miniruntime",
		Name:      "scheduler_panicked",
		Help:      "Panicked task count snapshot per scheduler.",
	}, []string{"scheduler", "flavor"})
	wakes := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "miniruntime",
		Name:      "scheduler_wakes",
		Help:      "Wakeup notification count snapshot per scheduler.",
	}, []string{"scheduler", "flavor"})
	pending := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "miniruntime",
		Name:      "scheduler_pending",
		Help:      "Run queue depth snapshot per scheduler.",
	}, []string{"scheduler", "flavor"})
	running := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "miniruntime",
		Name:      "scheduler_running",
		Help:      "Scheduler driving state (1=driving, 0=idle).",
	}, []string{"scheduler", "flavor"})

	var err error
	if spawned, err = registerCollector(reg, spawned); err != nil {
		return nil, err
	}
	if completed, err = registerCollector(reg, completed); err != nil {
		return nil, err
	}
	if panicked, err = registerCollector(reg, panicked); err != nil {
		return nil, err
	}
	if wakes, err = registerCollector(reg, wakes); err != nil {
		return nil, err
	}
	if pending, err = registerCollector(reg, pending); err != nil {
		return nil, err
	}
	if running, err = registerCollector(reg, running); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:           interval,
		schedulers:         make(map[string]SchedulerSnapshotProvider),
		schedulerSpawned:   spawned,
		schedulerCompleted: completed,
		schedulerPanicked:  panicked,
		schedulerWakes:     wakes,
		schedulerPending:   pending,
		schedulerRunning:   running,
	}, nil
}

// AddScheduler adds or replaces a scheduler snapshot provider by name.
func (p *SnapshotPoller) AddScheduler(name string, provider SchedulerSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "scheduler")
	p.schedulersMu.Lock()
	p.schedulers[name] = provider
	p.schedulersMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.schedulersMu.RLock()
	defer p.schedulersMu.RUnlock()

	for name, provider := range p.schedulers {
		stats := provider.Stats()
		flavor := normalizeLabel(stats.Flavor, "unknown")
		p.schedulerSpawned.WithLabelValues(name, flavor).Set(float64(stats.Spawned))
		p.schedulerCompleted.WithLabelValues(name, flavor).Set(float64(stats.Completed))
		p.schedulerPanicked.WithLabelValues(name, flavor).Set(float64(stats.Panicked))
		p.schedulerWakes.WithLabelValues(name, flavor).Set(float64(stats.Wakes))
		p.schedulerPending.WithLabelValues(name, flavor).Set(float64(stats.Pending))
		if stats.Running {
			p.schedulerRunning.WithLabelValues(name, flavor).Set(1)
		} else {
			p.schedulerRunning.WithLabelValues(name, flavor).Set(0)
		}
	}
}
