package amqp

import (
	"encoding/json"
	"time"

	"expenses/internal/core"
	"expenses/internal/export"
)

// ExpensesExportedMessage carries a full export snapshot so consumers never
// need to reach back into the recorder.
type ExpensesExportedMessage struct {
	ExportID  string          `json:"export_id"`
	Timestamp time.Time       `json:"timestamp"`
	Count     int             `json:"count"`
	Total     float64         `json:"total"`
	Records   []ExpenseRecord `json:"records"`
}

// ExpenseRecord is the wire form of core.Expense.
type ExpenseRecord struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// NewExpensesExportedMessage builds the message for a batch.
func NewExpensesExportedMessage(b export.Batch) *ExpensesExportedMessage {
	msg := &ExpensesExportedMessage{
		ExportID:  b.ID,
		Timestamp: b.CreatedAt,
		Count:     len(b.Records),
		Records:   make([]ExpenseRecord, len(b.Records)),
	}
	for i, e := range b.Records {
		msg.Records[i] = ExpenseRecord{Date: e.Date, Description: e.Description, Amount: e.Amount}
		msg.Total += e.Amount
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *ExpensesExportedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpensesExportedMessageFromJSON creates a message from JSON bytes
func ExpensesExportedMessageFromJSON(data []byte) (*ExpensesExportedMessage, error) {
	var msg ExpensesExportedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Expenses converts the wire records back to domain records.
func (m *ExpensesExportedMessage) Expenses() []core.Expense {
	out := make([]core.Expense, len(m.Records))
	for i, r := range m.Records {
		out[i] = core.Expense{Date: r.Date, Description: r.Description, Amount: r.Amount}
	}
	return out
}
