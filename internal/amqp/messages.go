package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event operations.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
	OpReset  = "reset"
)

// LedgerEventMessage announces that the ledger changed. It carries only
// the operation, the affected record id and the resulting record count;
// consumers reload the slot for the actual data.
type LedgerEventMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates an event for the given operation.
func NewLedgerEventMessage(op, id string, count int) *LedgerEventMessage {
	return &LedgerEventMessage{
		Op:        op,
		ID:        id,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
