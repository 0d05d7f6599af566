package hub

import (
	"context"
	"errors"
)

var (
	ErrHubNotRunning    = errors.New("hub is not running")
	ErrConnectionClosed = errors.New("connection is closed")
	ErrSendBufferFull   = errors.New("send buffer full")
	ErrConnectionGone   = errors.New("connection not found")
)

// Connection represents any type of live subscriber channel (SSE, WebSocket, etc.)
//
// Send must not block: it either queues the message for the connection's own
// writer or fails immediately. The hub dispatches while holding its read lock.
type Connection interface {
	ID() string
	Type() string
	Send(ctx context.Context, message *Message) error
	Close() error
	IsClosed() bool
	// Context is cancelled once the connection reaches CLOSED.
	Context() context.Context
}

// Metrics receives hub gauges and counters. A nil Metrics is ignored.
type Metrics interface {
	SetConnections(n int)
	ObserveBroadcast(event string, delivered, failed int)
}
