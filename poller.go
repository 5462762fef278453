package sensor

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// defaultPollInterval is the cycle length used when the caller does not configure one.
// The fetchers' own minimum-interval gates still apply on top of it, so polling faster
// than a fetcher's window simply republishes its cached value.
const defaultPollInterval = 30 * time.Second

// Poller drives the steady-state update loop the host would otherwise own: on every
// cycle it refreshes each registered sensor and, when a store is attached, mirrors the
// resulting readings into it. Errors from individual sensors are logged and skipped so
// one misbehaving endpoint never stalls the rest of the cycle.
type Poller struct {
	registry *Registry
	store    Store
	interval time.Duration
	logger   zerolog.Logger
}

// NewPoller function constructs a fully configured Poller instance over the registry.
// It applies all provided functional options and initializes default values for any
// optional configuration not explicitly set. The registry is mandatory.
func NewPoller(registry *Registry, opts ...pollerOptions) (*Poller, error) {
	if registry == nil {
		return nil, ErrEmptyRegistry
	}

	poller := &Poller{
		registry: registry,
		interval: defaultPollInterval,
		logger:   zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(poller)
	}

	if poller.interval <= 0 {
		poller.interval = defaultPollInterval
	}

	return poller, nil
}

// Run executes poll cycles on the configured interval until the context is cancelled.
// It returns the context's error on shutdown and nothing else: per-sensor failures are
// handled inside the cycle and never terminate the loop.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll executes one update cycle over every registered sensor.
// Update errors and store errors are logged per sensor and the cycle moves on.
func (p *Poller) Poll(ctx context.Context) {
	for _, s := range p.registry.Sensors() {
		if err := s.Update(ctx); err != nil {
			p.logger.Error().Err(err).Str("sensor", s.Name()).Msg("sensor update failed")
			continue
		}

		if p.store == nil {
			continue
		}

		if err := p.store.Save(ctx, s.Reading()); err != nil {
			p.logger.Error().Err(err).Str("sensor", s.Name()).Msg("failed to store reading")
		}
	}
}
