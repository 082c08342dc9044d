package dataset

import (
	"fmt"
	"sort"
	"sync"
)

// LoaderFactory is a function type that creates a Loader from the source config
type LoaderFactory func(cfg Config) (Loader, error)

// Registry manages dataset loader factories keyed by driver name
type Registry interface {
	// Register adds a new driver factory
	Register(driver string, factory LoaderFactory) error
	// Create instantiates a loader for the specified driver using the provided config
	Create(driver string, cfg Config) (Loader, error)
	// ListDrivers returns the registered driver names in sorted order
	ListDrivers() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]LoaderFactory
}

// NewRegistry creates a registry pre-populated with factories
func NewRegistry(factories map[string]LoaderFactory) Registry {
	r := &registry{
		factories: make(map[string]LoaderFactory, len(factories)),
	}
	for driver, factory := range factories {
		r.factories[driver] = factory
	}
	return r
}

func (r *registry) Register(driver string, factory LoaderFactory) error {
	if driver == "" {
		return fmt.Errorf("driver name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[driver]; exists {
		return fmt.Errorf("driver %q is already registered", driver)
	}

	r.factories[driver] = factory
	return nil
}

func (r *registry) Create(driver string, cfg Config) (Loader, error) {
	r.mu.RLock()
	factory, exists := r.factories[driver]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("driver %q is not registered", driver)
	}

	return factory(cfg)
}

func (r *registry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]string, 0, len(r.factories))
	for driver := range r.factories {
		drivers = append(drivers, driver)
	}
	sort.Strings(drivers)
	return drivers
}
