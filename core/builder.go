package core

import "fmt"

// Builder builds a Runtime with custom configuration values.
// Configuration methods chain on the return value.
type Builder struct {
	flavor Flavor

	// Seed source for deterministic results. Test harnesses inject a
	// fixed seed through WithSeed.
	seedGen *RngSeedGenerator

	logger       Logger
	metrics      Metrics
	panicHandler PanicHandler
	historyCap   int
}

// NewCurrentThread returns a builder for a current-thread runtime,
// initialized with default configuration values.
func NewCurrentThread() *Builder {
	return newBuilder(FlavorCurrentThread)
}

func newBuilder(flavor Flavor) *Builder {
	return &Builder{
		flavor:       flavor,
		seedGen:      NewRngSeedGenerator(NewRngSeed()),
		logger:       NewNoOpLogger(),
		metrics:      &NilMetrics{},
		panicHandler: &DefaultPanicHandler{},
		historyCap:   defaultTaskHistoryCapacity,
	}
}

// WithSeed fixes the random number generator seed so the runtime behaves
// deterministically.
func (b *Builder) WithSeed(seed RngSeed) *Builder {
	b.seedGen = NewRngSeedGenerator(seed)
	return b
}

// WithLogger sets the logger used for runtime lifecycle events.
func (b *Builder) WithLogger(logger Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithMetrics sets the metrics sink.
func (b *Builder) WithMetrics(metrics Metrics) *Builder {
	if metrics != nil {
		b.metrics = metrics
	}
	return b
}

// WithPanicHandler sets the handler invoked when a spawned task panics.
func (b *Builder) WithPanicHandler(handler PanicHandler) *Builder {
	if handler != nil {
		b.panicHandler = handler
	}
	return b
}

// WithHistoryCapacity sets how many recently finished tasks the runtime
// remembers.
func (b *Builder) WithHistoryCapacity(capacity int) *Builder {
	b.historyCap = capacity
	return b
}

// Build constructs the configured Runtime.
func (b *Builder) Build() (*Runtime, error) {
	switch b.flavor {
	case FlavorCurrentThread:
		return b.buildCurrentThreadRuntime(), nil
	default:
		return nil, fmt.Errorf("core: cannot build runtime: unknown flavor %s", b.flavor)
	}
}

func (b *Builder) buildCurrentThreadRuntime() *Runtime {
	ct := newCurrentThreadHandle(
		b.seedGen.NextGenerator(),
		b.logger,
		b.metrics,
		b.panicHandler,
		b.historyCap,
	)

	handle := &Handle{flavor: FlavorCurrentThread, ct: ct}

	b.logger.Info("runtime built", F("flavor", FlavorCurrentThread.String()))

	return &Runtime{
		scheduler: newCurrentThread(ct),
		handle:    handle,
	}
}
