package hub

import (
	"context"
	"sync"

	"go-blog-api/internal/infrastructure/logger"
)

const defaultSendBuffer = 256

// baseConnection owns the OPEN -> CLOSED transition and the bounded send
// queue shared by every transport.
type baseConnection struct {
	id string

	ctx    context.Context
	cancel context.CancelFunc

	closed   bool
	closedMu sync.RWMutex

	send chan *Message

	logger logger.Logger
}

func newBaseConnection(parent context.Context, id string, buffer int, log logger.Logger) *baseConnection {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	ctx, cancel := context.WithCancel(parent)
	return &baseConnection{
		id:     id,
		ctx:    ctx,
		cancel: cancel,
		send:   make(chan *Message, buffer),
		logger: log.WithField("connection_id", id),
	}
}

// ID returns unique connection identifier
func (c *baseConnection) ID() string {
	return c.id
}

// Send queues the message without blocking. The enqueue never waits, so ctx
// does not gate it: a cancelled caller still reaches a live connection.
func (c *baseConnection) Send(_ context.Context, message *Message) error {
	// Reject unencodable messages here rather than in the writer.
	if _, err := message.Encode(); err != nil {
		return err
	}

	// The read lock keeps close(c.send) from racing the enqueue.
	c.closedMu.RLock()
	defer c.closedMu.RUnlock()

	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.send <- message:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// markClosed flips the state once and reports whether this call did it.
func (c *baseConnection) markClosed() bool {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()

	if c.closed {
		return false
	}
	c.closed = true
	c.cancel()
	close(c.send)
	return true
}

// IsClosed returns true if connection is closed
func (c *baseConnection) IsClosed() bool {
	c.closedMu.RLock()
	defer c.closedMu.RUnlock()
	return c.closed
}

// Context returns the connection's context (for cancellation)
func (c *baseConnection) Context() context.Context {
	return c.ctx
}
