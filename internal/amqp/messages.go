package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Mirror event actions. The worker reacts to created and settled by
// refreshing the spreadsheet row and to deleted by dropping it.
const (
	ActionCreated = "created"
	ActionSettled = "settled"
	ActionDeleted = "deleted"
)

// TransactionEventMessage carries only the record id and the action;
// the worker fetches the full record from the store.
type TransactionEventMessage struct {
	MessageID     string    `json:"message_id"`
	TransactionID string    `json:"transaction_id"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

func (m *TransactionEventMessage) Validate() error {
	switch m.Action {
	case ActionCreated, ActionSettled, ActionDeleted:
	default:
		return fmt.Errorf("unknown action %q", m.Action)
	}
	if m.TransactionID == "" {
		return fmt.Errorf("empty transaction id")
	}
	return nil
}

func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionEventFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
