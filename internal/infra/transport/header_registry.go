// Package transport implements the outbound HTTP side of the client: the
// header registry and the moducare backend endpoint set.
package transport

import (
	"maps"
	"sync"

	"moducare/internal/domain/service"
)

// headerRegistry is the concrete HeaderRegistry. Go is genuinely
// multithreaded, so mutation is guarded by a lock to keep every update
// atomic with respect to readers.
type headerRegistry struct {
	mu      sync.RWMutex
	headers map[string]string
}

// NewHeaderRegistry creates an empty header registry.
func NewHeaderRegistry() service.HeaderRegistry {
	return &headerRegistry{
		headers: make(map[string]string),
	}
}

// SetHeader overwrites any existing value for name.
func (r *headerRegistry) SetHeader(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.headers[name] = value
}

// RemoveHeader deletes the header.
func (r *headerRegistry) RemoveHeader(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.headers, name)
}

// Headers returns a copy of the current mapping. Mutating the returned map
// does not affect the registry.
func (r *headerRegistry) Headers() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]string, len(r.headers))
	maps.Copy(snapshot, r.headers)

	return snapshot
}
