// Package delivery contains the transports that expose the use cases.
package delivery

import "context"

// Delivery is a transport that serves until it is shut down.
type Delivery interface {
	Serve(ctx context.Context) error
}
