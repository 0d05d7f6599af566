package hub

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go-blog-api/internal/infrastructure/logger"
)

const defaultCleanupInterval = 30 * time.Second

// Hub is the set of live subscriber connections and the fan-out over them.
// It is constructed once at startup and shared by every handler that
// subscribes or broadcasts.
type Hub struct {
	connections   map[string]Connection
	connectionsMu sync.RWMutex

	running   bool
	runningMu sync.RWMutex

	logger  logger.Logger
	metrics Metrics

	cleanupInterval time.Duration

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Hub)

func WithMetrics(m Metrics) Option {
	return func(h *Hub) { h.metrics = m }
}

func WithCleanupInterval(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.cleanupInterval = d
		}
	}
}

// New creates a new Hub instance
func New(logger logger.Logger, opts ...Option) *Hub {
	h := &Hub{
		connections:     make(map[string]Connection),
		logger:          logger.WithField("component", "hub"),
		cleanupInterval: defaultCleanupInterval,
		ctx:             context.Background(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start starts the cleanup loop and begins accepting subscriptions
func (h *Hub) Start(ctx context.Context) error {
	h.runningMu.Lock()
	defer h.runningMu.Unlock()

	if h.running {
		return fmt.Errorf("hub is already running")
	}

	h.ctx, h.cancel = context.WithCancel(ctx)
	h.running = true

	h.wg.Add(1)
	go h.run()

	h.logger.Info("Hub started successfully")
	return nil
}

// Stop closes every live connection and empties the set
func (h *Hub) Stop(ctx context.Context) error {
	h.runningMu.Lock()
	if !h.running {
		h.runningMu.Unlock()
		return nil
	}
	h.running = false
	h.cancel()
	h.runningMu.Unlock()

	h.connectionsMu.Lock()
	closing := h.connections
	h.connections = make(map[string]Connection)
	h.reportSizeLocked()
	h.connectionsMu.Unlock()

	for _, conn := range closing {
		if err := conn.Close(); err != nil {
			h.logger.Errorf("Failed to close connection %s: %v", conn.ID(), err)
		}
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("hub stop: %w", ctx.Err())
	}

	h.logger.Infof("Hub stopped successfully, closed %d connections", len(closing))
	return nil
}

// IsRunning returns true if the hub is currently running
func (h *Hub) IsRunning() bool {
	h.runningMu.RLock()
	defer h.runningMu.RUnlock()
	return h.running
}

// Subscribe adds a connection to the live set. Subscribing a connection that
// is already present is a no-op. The connection is removed automatically
// once its context is done.
func (h *Hub) Subscribe(conn Connection) error {
	h.runningMu.RLock()
	defer h.runningMu.RUnlock()

	if !h.running {
		return ErrHubNotRunning
	}
	if conn.IsClosed() {
		return ErrConnectionClosed
	}

	h.connectionsMu.Lock()
	if _, exists := h.connections[conn.ID()]; exists {
		h.connectionsMu.Unlock()
		return nil
	}
	h.connections[conn.ID()] = conn
	h.reportSizeLocked()
	h.connectionsMu.Unlock()

	h.logger.Infof("Connection %s subscribed (type: %s)", conn.ID(), conn.Type())

	h.wg.Add(1)
	go h.watch(conn)
	return nil
}

// Unsubscribe removes a connection from the live set. Removing an absent
// connection is a no-op, so a double close is harmless.
func (h *Hub) Unsubscribe(conn Connection) {
	h.connectionsMu.Lock()
	current, exists := h.connections[conn.ID()]
	removed := exists && sameConnection(current, conn)
	if removed {
		delete(h.connections, conn.ID())
		h.reportSizeLocked()
	}
	h.connectionsMu.Unlock()

	if removed {
		h.logger.Infof("Connection %s unsubscribed", conn.ID())
	}
}

// sameConnection reports whether a and b are the same subscriber. Pointer
// implementations compare by identity. Non-comparable value implementations
// fall back to type and ID, which the caller has already matched.
func sameConnection(a, b Connection) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() {
		return true
	}
	return a == b
}

// watch is the close handler: it unsubscribes the connection as soon as the
// connection observes its own close.
func (h *Hub) watch(conn Connection) {
	defer h.wg.Done()

	select {
	case <-conn.Context().Done():
		h.Unsubscribe(conn)
	case <-h.ctx.Done():
	}
}

// GetConnection returns a connection by ID
func (h *Hub) GetConnection(connID string) (Connection, bool) {
	h.connectionsMu.RLock()
	defer h.connectionsMu.RUnlock()

	conn, exists := h.connections[connID]
	return conn, exists
}

// GetConnections returns all active connections
func (h *Hub) GetConnections() []Connection {
	h.connectionsMu.RLock()
	defer h.connectionsMu.RUnlock()

	connections := make([]Connection, 0, len(h.connections))
	for _, conn := range h.connections {
		connections = append(connections, conn)
	}
	return connections
}

// GetConnectionsByType returns connections of a specific type
func (h *Hub) GetConnectionsByType(connType string) []Connection {
	h.connectionsMu.RLock()
	defer h.connectionsMu.RUnlock()

	var connections []Connection
	for _, conn := range h.connections {
		if conn.Type() == connType {
			connections = append(connections, conn)
		}
	}
	return connections
}

// ConnectionCount returns the number of active connections
func (h *Hub) ConnectionCount() int {
	h.connectionsMu.RLock()
	defer h.connectionsMu.RUnlock()
	return len(h.connections)
}

// BroadcastResult counts the outcome of one broadcast.
type BroadcastResult struct {
	Delivered int
	Failed    int
}

// Broadcast hands the message to every live connection. A failed delivery
// is logged and counted; it neither stops the loop nor evicts the connection.
//
// Dispatch runs under the read lock. Connection.Send is non-blocking, so the
// lock is held briefly, and an Unsubscribe that has returned guarantees the
// connection sees no later dispatch.
func (h *Hub) Broadcast(ctx context.Context, message *Message) BroadcastResult {
	var result BroadcastResult

	h.connectionsMu.RLock()
	for _, conn := range h.connections {
		if conn.IsClosed() {
			continue
		}
		if err := conn.Send(ctx, message); err != nil {
			result.Failed++
			h.logger.Warnf("Failed to deliver %s to connection %s: %v", message.Event, conn.ID(), err)
			continue
		}
		result.Delivered++
	}
	h.connectionsMu.RUnlock()

	if h.metrics != nil {
		h.metrics.ObserveBroadcast(message.Event, result.Delivered, result.Failed)
	}
	h.logger.Debugf("Broadcasted %s to %d connections (%d failed)", message.Event, result.Delivered, result.Failed)
	return result
}

// SendToConnection sends a message to a specific connection
func (h *Hub) SendToConnection(ctx context.Context, connID string, message *Message) error {
	conn, exists := h.GetConnection(connID)
	if !exists {
		return fmt.Errorf("%w: %s", ErrConnectionGone, connID)
	}

	if err := conn.Send(ctx, message); err != nil {
		return fmt.Errorf("send to connection %s: %w", connID, err)
	}
	return nil
}

// run sweeps connections that closed without their watcher noticing yet
func (h *Hub) run() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.cleanupClosedConnections()

		case <-h.ctx.Done():
			h.logger.Info("Hub run loop stopped")
			return
		}
	}
}

// cleanupClosedConnections removes connections that have been closed
func (h *Hub) cleanupClosedConnections() {
	h.connectionsMu.Lock()
	defer h.connectionsMu.Unlock()

	removed := 0
	for id, conn := range h.connections {
		if conn.IsClosed() {
			delete(h.connections, id)
			removed++
			h.logger.Infof("Cleaned up closed connection %s", id)
		}
	}

	if removed > 0 {
		h.reportSizeLocked()
	}
}

// reportSizeLocked must be called with connectionsMu held for writing.
func (h *Hub) reportSizeLocked() {
	if h.metrics != nil {
		h.metrics.SetConnections(len(h.connections))
	}
}
