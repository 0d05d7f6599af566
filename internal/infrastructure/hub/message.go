package hub

import (
	"encoding/json"
	"fmt"
)

// Message is what a subscriber receives: {"event": "...", "data": <JSON>}.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`

	encoded []byte
}

// NewMessage serialises payload once and pre-encodes the wire form, so a
// broadcast to N connections marshals exactly once.
func NewMessage[T any](event string, payload T) (*Message, error) {
	if event == "" {
		return nil, fmt.Errorf("message event cannot be empty")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("message data must be JSON serializable: %w", err)
	}

	msg := &Message{Event: event, Data: data}
	if msg.encoded, err = json.Marshal(msg); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return msg, nil
}

// Encode returns the wire form of the message.
func (m *Message) Encode() ([]byte, error) {
	if m.encoded != nil {
		return m.encoded, nil
	}
	if m.Data == nil {
		return json.Marshal(Message{Event: m.Event, Data: json.RawMessage("null")})
	}
	return json.Marshal(m)
}
