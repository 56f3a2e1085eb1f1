package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"vocespese/internal/amqp"
	"vocespese/internal/core"
	"vocespese/internal/sheets"
)

// AuditTable is the table audit events land in.
const AuditTable = "_audit"

var auditHeader = []string{"Timestamp", "Username", "Action", "ExpenseID", "Category"}

// AuditWorker appends write-audit events from the queue to the audit
// table, giving every mutation a durable trail outside the user sheets.
type AuditWorker struct {
	store sheets.Store
}

func NewAuditWorker(store sheets.Store) *AuditWorker {
	return &AuditWorker{store: store}
}

// HandleAuditEvent processes a single audit message from AMQP.
func (w *AuditWorker) HandleAuditEvent(ctx context.Context, msg *amqp.AuditEventMessage) error {
	if err := w.store.EnsureTable(ctx, AuditTable, auditHeader); err != nil {
		return fmt.Errorf("ensure audit table: %w", err)
	}

	row := []string{
		msg.Timestamp.Format(core.TimestampLayout),
		msg.Username,
		msg.Action,
		strconv.FormatInt(msg.ExpenseID, 10),
		msg.Category,
	}
	if err := w.store.AppendRow(ctx, AuditTable, row); err != nil {
		return fmt.Errorf("append audit row: %w", err)
	}

	slog.InfoContext(ctx, "Audit event recorded",
		"username", msg.Username,
		"action", msg.Action,
		"expense_id", msg.ExpenseID)
	return nil
}
