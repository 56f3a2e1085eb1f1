package amqp

import (
	"strings"
	"testing"
	"time"
)

func TestAuditEventMessageRoundTrip(t *testing.T) {
	msg := NewAuditEventMessage("mario", ActionEdit, 7, "groceries")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := AuditEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Username != "mario" || decoded.Action != ActionEdit {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.ExpenseID != 7 || decoded.Category != "groceries" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("timestamp lost in round trip")
	}
}

func TestAuditEventMessageOmitsEmptyFields(t *testing.T) {
	msg := &AuditEventMessage{
		Username:  "sara",
		Action:    ActionSetBudget,
		Timestamp: time.Now(),
	}
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "expense_id") {
		t.Errorf("zero expense_id should be omitted: %s", s)
	}
	if strings.Contains(s, "category") {
		t.Errorf("empty category should be omitted: %s", s)
	}
}

func TestAuditEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := AuditEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
