package transaction

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/normalize"
)

// Transaction is a recorded sale or payment against a business.
type Transaction struct {
	ID         int64   `json:"id"`
	BusinessID int64   `json:"business_id"`
	Type       string  `json:"type,omitempty"`
	Reference  string  `json:"reference,omitempty"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status,omitempty"`
	Customer   string  `json:"customer,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// FromJSON decodes one transaction record.
func FromJSON(node gjson.Result) Transaction {
	return Transaction{
		ID:         normalize.Int(node, "id", 0),
		BusinessID: normalize.Int(node, "business_id", 0),
		Type:       normalize.Str(node, "type"),
		Reference:  normalize.Str(node, "reference"),
		Amount:     normalize.Float(node, "amount", 0),
		Status:     normalize.Str(node, "status"),
		Customer:   normalize.Str(node, "customer_name"),
		CreatedAt:  normalize.Str(node, "created_at"),
	}
}

// Input is the record-transaction payload.
type Input struct {
	BusinessID int64
	Type       string
	Amount     float64
	Reference  string
	Customer   string
	Notes      string
}

// Filter narrows transaction listings. Zero-valued fields are omitted
// from the outgoing query entirely.
type Filter struct {
	Page      int
	PerPage   int
	Status    string
	DateFrom  string
	DateTo    string
	Search    string
	SortBy    string
	SortOrder string
}
