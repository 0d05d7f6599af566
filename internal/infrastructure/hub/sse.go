package hub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"

	"go-blog-api/internal/infrastructure/logger"
)

const (
	TypeSSE = "sse"

	sseKeepAlive = 30 * time.Second
)

// SSEConnection implements Connection for Server-Sent Events. The request
// goroutine owns the ResponseWriter and drains the queue in Serve.
type SSEConnection struct {
	*baseConnection
	writer http.ResponseWriter
}

var _ Connection = (*SSEConnection)(nil)

// NewSSEConnection binds the connection lifetime to the request context.
func NewSSEConnection(ctx context.Context, id string, w http.ResponseWriter, logger logger.Logger) *SSEConnection {
	conn := &SSEConnection{
		baseConnection: newBaseConnection(ctx, id, defaultSendBuffer, logger),
		writer:         w,
	}
	conn.setupSSEHeaders()
	return conn
}

// Type returns the connection type
func (c *SSEConnection) Type() string {
	return TypeSSE
}

// Close gracefully closes the connection
func (c *SSEConnection) Close() error {
	if c.markClosed() {
		c.logger.Info("SSE connection closed")
	}
	return nil
}

// Serve writes queued messages until the connection closes or the client
// goes away. It must be called from the handler goroutine.
func (c *SSEConnection) Serve() {
	defer c.Close()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			data, err := message.Encode()
			if err != nil {
				c.logger.Warnf("Skipping undecodable message: %v", err)
				continue
			}
			if err := c.write(sse.Event{Event: message.Event, Data: string(data)}); err != nil {
				c.logger.Warnf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			if err := c.write(sse.Event{Event: "keepalive", Data: time.Now().Unix()}); err != nil {
				c.logger.Warnf("Failed to send keep-alive: %v", err)
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// Hello writes the initial connected event directly.
func (c *SSEConnection) Hello() error {
	return c.write(sse.Event{
		Event: "connected",
		Data: map[string]any{
			"connection_id": c.id,
			"timestamp":     time.Now().Format(time.RFC3339),
		},
	})
}

func (c *SSEConnection) write(event sse.Event) error {
	if err := sse.Encode(c.writer, event); err != nil {
		return fmt.Errorf("encode sse event: %w", err)
	}
	if flusher, ok := c.writer.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// setupSSEHeaders sets up the proper headers for SSE connection
func (c *SSEConnection) setupSSEHeaders() {
	c.writer.Header().Set("Content-Type", "text/event-stream")
	c.writer.Header().Set("Cache-Control", "no-cache")
	c.writer.Header().Set("Connection", "keep-alive")
	c.writer.Header().Set("X-Accel-Buffering", "no") // For nginx
}
