package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// ChangeEvent announces a persisted mutation of one finance collection.
// It carries only the record id; consumers reload the collection they need.
type ChangeEvent struct {
	Collection string            `json:"collection"`
	Action     core.ChangeAction `json:"action"`
	ID         string            `json:"id"`
	At         time.Time         `json:"at"`
	Timestamp  time.Time         `json:"timestamp"`
}

func NewChangeEvent(c core.Change) *ChangeEvent {
	return &ChangeEvent{
		Collection: c.Collection,
		Action:     c.Action,
		ID:         c.ID,
		At:         c.At,
		Timestamp:  time.Now(),
	}
}

func (m *ChangeEvent) Change() core.Change {
	return core.Change{Collection: m.Collection, Action: m.Action, ID: m.ID, At: m.At}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var msg ChangeEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
