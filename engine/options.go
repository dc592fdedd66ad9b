package engine

// ============================================================================
// BUILD OPTIONS — Functional options for Build/Aggregate
// ============================================================================

// Option configures dataset construction.
type Option func(*buildConfig)

type buildConfig struct {
	startYear    int
	startQuarter int
	topMakeLimit int
}

// WithDefaultStart sets the quarter at/after which the default window
// begins. The dashboard default is 2009 Q1.
func WithDefaultStart(year, quarter int) Option {
	return func(c *buildConfig) {
		c.startYear = year
		c.startQuarter = quarter
	}
}

// WithTopMakeLimit overrides the make-ranking cutoff (default 20).
func WithTopMakeLimit(n int) Option {
	return func(c *buildConfig) {
		if n > 0 {
			c.topMakeLimit = n
		}
	}
}

func applyOptions(opts []Option) *buildConfig {
	cfg := &buildConfig{
		startYear:    2009,
		startQuarter: 1,
		topMakeLimit: 20,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
