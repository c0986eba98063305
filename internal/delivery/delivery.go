// Package delivery defines the contract every exposed surface implements.
package delivery

import "context"

// Delivery is a serving surface started by the application entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
