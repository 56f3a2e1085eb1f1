package amqp

import (
	"encoding/json"
	"time"
)

// AuditEventMessage records one successful write against a user's
// table. The worker appends these to the audit table; consumers only
// need who did what, not the full row.
type AuditEventMessage struct {
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	ExpenseID int64     `json:"expense_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Audit actions.
const (
	ActionLog       = "log"
	ActionEdit      = "edit"
	ActionDelete    = "delete"
	ActionSetBudget = "set_budget"
)

func NewAuditEventMessage(username, action string, expenseID int64, category string) *AuditEventMessage {
	return &AuditEventMessage{
		Username:  username,
		Action:    action,
		ExpenseID: expenseID,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *AuditEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AuditEventMessageFromJSON creates a message from JSON bytes
func AuditEventMessageFromJSON(data []byte) (*AuditEventMessage, error) {
	var msg AuditEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
