package stock

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/normalize"
)

// Batch is a stock batch of SIM cards or vouchers issued to a business.
type Batch struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"business_id"`
	NetworkID  int64  `json:"network_id,omitempty"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// BatchFromJSON decodes one stock batch.
func BatchFromJSON(node gjson.Result) Batch {
	return Batch{
		ID:         normalize.Int(node, "id", 0),
		BusinessID: normalize.Int(node, "business_id", 0),
		NetworkID:  normalize.Int(node, "network_id", 0),
		Name:       normalize.Str(node, "name"),
		Quantity:   normalize.Int(node, "quantity", 0),
		Status:     normalize.Str(node, "status"),
		CreatedAt:  normalize.Str(node, "created_at"),
	}
}

// BatchInput is the create-batch payload.
type BatchInput struct {
	BusinessID int64
	NetworkID  int64
	Name       string
	Quantity   int64
	Notes      string
}

// Item is a single stock item (one SIM serial) inside a batch.
type Item struct {
	ID           int64  `json:"id"`
	BatchID      int64  `json:"batch_id"`
	SerialNumber string `json:"serial_number"`
	Status       string `json:"status,omitempty"`
}

// ItemFromJSON decodes one stock item.
func ItemFromJSON(node gjson.Result) Item {
	return Item{
		ID:           normalize.Int(node, "id", 0),
		BatchID:      normalize.Int(node, "batch_id", 0),
		SerialNumber: normalize.Str(node, "serial_number"),
		Status:       normalize.Str(node, "status"),
	}
}

// ItemsResult is the create-items response payload: the batch record
// with its created items nested under it.
type ItemsResult struct {
	Batch Batch  `json:"batch"`
	Items []Item `json:"items"`
}

// ItemsResultFromJSON decodes a create-items payload. A missing nested
// items array degrades to empty, never to an error.
func ItemsResultFromJSON(node gjson.Result) ItemsResult {
	res := ItemsResult{Batch: BatchFromJSON(node), Items: []Item{}}
	for _, item := range node.Get("items").Array() {
		res.Items = append(res.Items, ItemFromJSON(item))
	}
	return res
}

// Verification is the result of checking a SIM serial number.
type Verification struct {
	SerialNumber string `json:"serial_number"`
	Valid        bool   `json:"valid"`
	Network      string `json:"network,omitempty"`
	Message      string `json:"message,omitempty"`
}

// VerificationFromJSON decodes a verify-serial payload.
func VerificationFromJSON(node gjson.Result) Verification {
	valid := true
	if v := node.Get("valid"); v.Exists() {
		valid = normalize.Truthy(v)
	}
	return Verification{
		SerialNumber: normalize.Str(node, "serial_number"),
		Valid:        valid,
		Network:      normalize.Str(node, "network"),
		Message:      normalize.Str(node, "message"),
	}
}
