package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged with an analysis board
type MessageType string

const (
	MessageTypeQuery      MessageType = "query"
	MessageTypeMoves      MessageType = "moves"
	MessageTypeSetSquare  MessageType = "setSquare"
	MessageTypeBoardState MessageType = "boardState"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for every websocket frame
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func NewErrorMessage(errMsg string) Message {
	msg, err := NewMessage(MessageTypeError, ErrorPayload{Error: errMsg})
	if err != nil {
		return Message{Type: MessageTypeError}
	}
	return msg
}

type ErrorPayload struct {
	Error string `json:"error"`
}
