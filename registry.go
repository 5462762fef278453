package sensor

import "sync"

// Registry holds the sensors visible to the host, keyed by name.
// It is the in-process analog of a host entity registry and is safe for concurrent
// use by setup and pollers.
type Registry struct {
	mu      sync.RWMutex
	sensors map[string]*Sensor
	order   []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{sensors: make(map[string]*Sensor)}
}

// Add registers a sensor under its name. Names must be unique: registering a second
// sensor under an existing name returns ErrDuplicateSensor and leaves the registry
// unchanged.
func (r *Registry) Add(s *Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sensors[s.Name()]; exists {
		return ErrDuplicateSensor
	}

	r.sensors[s.Name()] = s
	r.order = append(r.order, s.Name())
	return nil
}

// Get returns the sensor registered under name, with ok reporting whether it exists.
func (r *Registry) Get(name string) (*Sensor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sensors[name]
	return s, ok
}

// Sensors returns all registered sensors in registration order.
func (r *Registry) Sensors() []*Sensor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Sensor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sensors[name])
	}
	return out
}
