package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/docbridge/docbridge/pkg/dbcapabilities"
)

// Registry manages the registration and retrieval of store adapters.
type Registry struct {
	adapters map[dbcapabilities.DatabaseID]StoreAdapter
	mu       sync.RWMutex
}

// NewRegistry creates a new adapter registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[dbcapabilities.DatabaseID]StoreAdapter),
	}
}

// Register registers a store adapter.
// If an adapter for the same backend type is already registered, it will be replaced.
func (r *Registry) Register(adapter StoreAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.adapters[adapter.Type()] = adapter
}

// Get retrieves a registered adapter by backend type.
// Returns ErrAdapterNotFound if the adapter is not registered.
func (r *Registry) Get(backend dbcapabilities.DatabaseID) (StoreAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[backend]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAdapterNotFound, backend)
	}

	return adapter, nil
}

// GetByName retrieves a registered adapter by backend name or alias.
// Returns ErrAdapterNotFound if the adapter is not registered.
func (r *Registry) GetByName(name string) (StoreAdapter, error) {
	backend, ok := dbcapabilities.ParseID(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown backend type '%s'", ErrAdapterNotFound, name)
	}

	return r.Get(backend)
}

// IsRegistered checks if an adapter is registered for the given backend type.
func (r *Registry) IsRegistered(backend dbcapabilities.DatabaseID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.adapters[backend]
	return exists
}

// ListRegistered returns a list of all registered backend types.
func (r *Registry) ListRegistered() []dbcapabilities.DatabaseID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]dbcapabilities.DatabaseID, 0, len(r.adapters))
	for backend := range r.adapters {
		types = append(types, backend)
	}

	return types
}

// Unregister removes an adapter from the registry.
func (r *Registry) Unregister(backend dbcapabilities.DatabaseID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.adapters, backend)
}

// Connect creates a new backend connection using the registered adapter.
func (r *Registry) Connect(ctx context.Context, config ConnectionConfig) (Connection, error) {
	backend, ok := dbcapabilities.ParseID(config.ConnectionType)
	if !ok {
		return nil, NewConfigurationError(
			dbcapabilities.DatabaseID(config.ConnectionType),
			"connectionType",
			fmt.Sprintf("unknown backend type: %s", config.ConnectionType),
		)
	}

	adapter, err := r.Get(backend)
	if err != nil {
		return nil, err
	}

	conn, err := adapter.Connect(ctx, config)
	if err != nil {
		return nil, WrapError(backend, "connect", err)
	}

	return conn, nil
}

// globalRegistry is the default global adapter registry.
var globalRegistry = NewRegistry()

// Register registers an adapter in the global registry.
func Register(adapter StoreAdapter) {
	globalRegistry.Register(adapter)
}

// Get retrieves an adapter from the global registry.
func Get(backend dbcapabilities.DatabaseID) (StoreAdapter, error) {
	return globalRegistry.Get(backend)
}

// GetByName retrieves an adapter from the global registry by name.
func GetByName(name string) (StoreAdapter, error) {
	return globalRegistry.GetByName(name)
}

// Connect creates a connection through the global registry.
func Connect(ctx context.Context, config ConnectionConfig) (Connection, error) {
	return globalRegistry.Connect(ctx, config)
}

// ListRegistered returns all registered backend types from the global registry.
func ListRegistered() []dbcapabilities.DatabaseID {
	return globalRegistry.ListRegistered()
}

// GlobalRegistry returns the global adapter registry.
func GlobalRegistry() *Registry {
	return globalRegistry
}
