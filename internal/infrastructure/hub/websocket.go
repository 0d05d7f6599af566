package hub

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"go-blog-api/internal/infrastructure/logger"
)

const (
	TypeWebSocket = "websocket"

	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingPeriod   = 54 * time.Second
	wsReadLimit    = 4096
)

// WebSocketConnection implements Connection over a gorilla websocket. Every
// message is written as one text frame by the write pump.
type WebSocketConnection struct {
	*baseConnection
	conn *websocket.Conn
}

var _ Connection = (*WebSocketConnection)(nil)

// NewWebSocketConnection wraps an upgraded socket and starts its pumps.
func NewWebSocketConnection(id string, conn *websocket.Conn, logger logger.Logger) *WebSocketConnection {
	wsConn := &WebSocketConnection{
		baseConnection: newBaseConnection(context.Background(), id, defaultSendBuffer, logger),
		conn:           conn,
	}

	wsConn.setupWebSocket()

	go wsConn.writePump()
	go wsConn.readPump()

	return wsConn
}

// Type returns the connection type
func (c *WebSocketConnection) Type() string {
	return TypeWebSocket
}

// Close sends a close frame and tears the socket down. Safe to call twice.
func (c *WebSocketConnection) Close() error {
	if !c.markClosed() {
		return nil
	}

	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteTimeout),
	)
	err := c.conn.Close()

	c.logger.Info("WebSocket connection closed")
	return err
}

func (c *WebSocketConnection) setupWebSocket() {
	c.conn.SetReadLimit(wsReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})
}

// writePump is the only writer of data frames on the socket.
func (c *WebSocketConnection) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

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

			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warnf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Warnf("Failed to send ping: %v", err)
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// readPump drains client frames so control frames are processed, and
// closes the connection when the peer goes away.
func (c *WebSocketConnection) readPump() {
	defer c.Close()

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				c.logger.Warnf("WebSocket error: %v", err)
			}
			return
		}

		switch messageType {
		case websocket.TextMessage:
			c.logger.Debugf("Received message from client: %s", string(data))
		case websocket.BinaryMessage:
			c.logger.Debugf("Received binary message of length: %d", len(data))
		}
	}
}
