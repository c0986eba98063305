// Package service defines the contracts for domain services that are
// implemented by the infra layer.
package service

import "context"

// Secure store keys. The names match what the mobile shell historically
// stored so an upgraded client finds its session again.
const (
	// StoreKeyRefreshToken holds the long-lived refresh token.
	StoreKeyRefreshToken = "refreshToken"

	// StoreKeyProfile holds the UserProfile captured at login.
	StoreKeyProfile = "info"
)

// SecureStore is an opaque key/value store with encrypted-at-rest values.
// Values are JSON-serializable.
type SecureStore interface {
	// Get unmarshals the value stored under key into out. The boolean
	// reports whether the key existed.
	Get(ctx context.Context, key string, out any) (bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value any) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
