package fastspsc

type config struct {
	misuseGuard   bool
	telemetryName string
	wait          WaitStrategy
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		wait: SpinWait{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Option configures a queue created by [New].
type Option func(*config)

// WithMisuseGuard makes the queue panic when two goroutines
// enqueue or dequeue at the same time.
func WithMisuseGuard() Option {
	return func(cfg *config) {
		cfg.misuseGuard = true
	}
}

// WithTelemetry exports the queue cursors as OpenTelemetry instruments
// labelled with name. The global meter provider is used.
func WithTelemetry(name string) Option {
	return func(cfg *config) {
		cfg.telemetryName = name
	}
}

// WithWaitStrategy sets what blocking calls do between polls.
// The default is a [SpinWait].
func WithWaitStrategy(ws WaitStrategy) Option {
	return func(cfg *config) {
		if ws != nil {
			cfg.wait = ws
		}
	}
}
