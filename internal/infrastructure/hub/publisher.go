package hub

import (
	"context"

	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/outbound"
)

// Publisher is a typed broadcast entry point for one payload type.
type Publisher[T any] struct {
	hub    *Hub
	logger logger.Logger
}

var _ outbound.EventPublisher[struct{}] = (*Publisher[struct{}])(nil)

func NewPublisher[T any](h *Hub) *Publisher[T] {
	return &Publisher[T]{hub: h, logger: h.logger}
}

// Publish encodes payload and broadcasts it. Failures never reach the caller.
// The event follows a committed mutation, so it outlives a cancelled request.
func (p *Publisher[T]) Publish(ctx context.Context, event string, payload T) {
	ctx = context.WithoutCancel(ctx)

	msg, err := NewMessage(event, payload)
	if err != nil {
		p.logger.Errorf("Dropping %s event: %v", event, err)
		return
	}
	p.hub.Broadcast(ctx, msg)
}
