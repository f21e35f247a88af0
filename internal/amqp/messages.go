package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"expensetracker/internal/export"
)

// ExportMessage carries a full export. Expenses is the list in the persisted
// wire format, embedded verbatim.
type ExportMessage struct {
	ExportID    string          `json:"exportId"`
	Count       int             `json:"count"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Expenses    json.RawMessage `json:"expenses"`
}

func NewExportMessage(doc export.Document) *ExportMessage {
	body := doc.JSON
	if len(body) == 0 {
		body = []byte("[]")
	}
	return &ExportMessage{
		ExportID:    uuid.NewString(),
		Count:       len(doc.Expenses),
		GeneratedAt: doc.GeneratedAt.UTC(),
		Expenses:    json.RawMessage(body),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExportMessageFromJSON(data []byte) (*ExportMessage, error) {
	var msg ExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
