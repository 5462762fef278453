package sensor

import (
	"context"
	"sync"
	"time"
)

// DefaultName is the sensor name used when the configuration does not provide one.
const DefaultName = "REST Sensor"

// Sensor is the published reading built on top of a fetcher: a named, unit-tagged state
// derived from the fetcher's cached result, optionally passed through a renderer.
// Construction performs one synchronous fetch-and-publish, so the first observed state
// is real data (or the failure sentinel), never a placeholder.
type Sensor struct {
	fetcher  Fetcher
	name     string
	unit     string
	renderer Renderer

	mu        sync.Mutex
	state     string
	updatedAt time.Time
}

// Reading is an immutable snapshot of a sensor taken at publish time.
// It is the shape handed to stores and external consumers.
type Reading struct {
	Name              string    `json:"name"`
	State             string    `json:"state"`
	UnitOfMeasurement string    `json:"unit_of_measurement,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewSensor constructs a sensor over the given fetcher and immediately performs one
// synchronous update so the sensor never exposes an unset state. An empty name falls
// back to DefaultName; the unit and renderer are both optional.
// The returned error is an unanticipated fetch or render failure from the first update —
// ordinary connectivity problems degrade to the sentinel and do not fail construction.
func NewSensor(ctx context.Context, fetcher Fetcher, name, unit string, renderer Renderer) (*Sensor, error) {
	if fetcher == nil {
		return nil, ErrEmptyFetcher
	}

	if name == "" {
		name = DefaultName
	}

	s := &Sensor{
		fetcher:  fetcher,
		name:     name,
		unit:     unit,
		renderer: renderer,
	}

	if err := s.Update(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Update refreshes the published state from the fetcher's cached result.
// When the fetcher's interval gate suppresses the fetch, the call changes nothing at all:
// state and last-updated timestamp stay byte-identical, so two updates inside the window
// publish the same reading. After an actual fetch the state is rederived: the sentinel
// verbatim on failure, the rendered value (defaulting to the sentinel when rendering
// yields nothing) when a renderer is configured, or the raw body as-is otherwise.
func (s *Sensor) Update(ctx context.Context) error {
	fetched, err := s.fetcher.Update(ctx)
	if err != nil {
		return err
	}

	// Throttled no-op: the cached result is unchanged, so the published reading must be
	// unchanged too, timestamp included.
	if !fetched {
		return nil
	}

	result := s.fetcher.Result()

	state := result.State()
	if !result.Failed() && s.renderer != nil {
		rendered, err := s.renderer.Render(result.Body())
		if err != nil {
			return err
		}
		if rendered == "" {
			rendered = Sentinel
		}
		state = rendered
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.updatedAt = time.Now().UTC()
	return nil
}

// Name returns the name of the sensor.
func (s *Sensor) Name() string {
	return s.name
}

// UnitOfMeasurement returns the unit the state is expressed in, or "" when untagged.
func (s *Sensor) UnitOfMeasurement() string {
	return s.unit
}

// State returns the currently published state of the sensor.
func (s *Sensor) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// LastUpdated returns the time the published state was last rederived from a fresh fetch.
func (s *Sensor) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updatedAt
}

// Reading returns a consistent snapshot of the sensor's published fields.
func (s *Sensor) Reading() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Reading{
		Name:              s.name,
		State:             s.state,
		UnitOfMeasurement: s.unit,
		UpdatedAt:         s.updatedAt,
	}
}
