package slotarena

import "go.uber.org/zap"

// defaultGrowthLogThreshold matches arena-cache's pkg/config.go default of
// logging rotation/growth-style events only once they start recurring,
// rather than on every single growth, which would be noisy for a
// container that grows from zero one element at a time.
const defaultGrowthLogThreshold = 4

// Option configures a Container at construction time. See With* functions.
type Option[T any] func(*config[T])

type config[T any] struct {
	logger             *zap.Logger
	metrics            metricsSink
	growthLogThreshold int
}

func defaultConfig[T any]() *config[T] {
	return &config[T]{
		logger:             zap.NewNop(),
		metrics:            noopMetrics{},
		growthLogThreshold: defaultGrowthLogThreshold,
	}
}

func applyOptions[T any](cfg *config[T], opts []Option[T]) {
	for _, opt := range opts {
		opt(cfg)
	}
}

// WithLogger attaches a zap logger a container uses for growth and
// diagnostic events. The default is a no-op logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(cfg *config[T]) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMetrics attaches a Prometheus registry a container reports its
// occupancy, growth, and rejected-handle counters to. The default is a
// no-op sink.
func WithMetrics[T any](reg PrometheusRegisterer, namespace, subsystem string) Option[T] {
	return func(cfg *config[T]) {
		cfg.metrics = newPromMetrics(reg, namespace, subsystem)
	}
}

// WithGrowthLogThreshold sets how many backing-storage growths a
// container accumulates before it starts logging them at debug level.
// A threshold of 0 logs every growth.
func WithGrowthLogThreshold[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n >= 0 {
			cfg.growthLogThreshold = n
		}
	}
}
