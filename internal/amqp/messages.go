package amqp

import (
	"encoding/json"
	"time"

	"lifelog/internal/core"
)

// RecordSyncMessage asks the worker to back up one stored record. It carries
// only the record's identity; the worker fetches the full row from the
// database so the queue never holds stale payloads.
type RecordSyncMessage struct {
	Domain    core.Domain `json:"domain"`
	ID        int64       `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewRecordSyncMessage creates a sync message for one record.
func NewRecordSyncMessage(domain core.Domain, id int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		Domain:    domain,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes and rejects
// unknown domains before they reach a handler.
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := core.ParseDomain(string(msg.Domain)); err != nil {
		return nil, err
	}
	return &msg, nil
}
