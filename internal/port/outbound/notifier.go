package outbound

import "context"

// EventPublisher fans a typed payload out to live subscribers. Delivery is
// best effort: implementations log failures instead of returning them.
type EventPublisher[T any] interface {
	Publish(ctx context.Context, event string, payload T)
}
