// Package delivery defines the entry points that expose the application.
package delivery

import "context"

// Delivery is a long-running server started after the Fx graph is built.
type Delivery interface {
	Serve(ctx context.Context) error
}
