package transport

import (
	"testing"

	"moducare/internal/domain/service"

	"github.com/stretchr/testify/assert"
)

func TestHeaderRegistry_SetRemove(t *testing.T) {
	registry := NewHeaderRegistry()

	registry.SetHeader(service.HeaderAuthorization, "Bearer one")
	assert.Equal(t, "Bearer one", registry.Headers()[service.HeaderAuthorization])

	registry.SetHeader(service.HeaderAuthorization, "Bearer two")
	assert.Equal(t, "Bearer two", registry.Headers()[service.HeaderAuthorization])

	registry.RemoveHeader(service.HeaderAuthorization)
	assert.Empty(t, registry.Headers()[service.HeaderAuthorization])
}

func TestHeaderRegistry_SnapshotIsDetached(t *testing.T) {
	registry := NewHeaderRegistry()
	registry.SetHeader("X-Custom", "a")

	snapshot := registry.Headers()
	snapshot["X-Custom"] = "mutated"

	assert.Equal(t, "a", registry.Headers()["X-Custom"])
}
