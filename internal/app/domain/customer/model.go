package customer

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/normalize"
)

// Detail is a customer service-detail submission: the KYC-style record
// captured when a SIM or service is issued to an end customer.
type Detail struct {
	BusinessID   int64  `json:"business_id"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	IDType       string `json:"id_type,omitempty"`
	IDNumber     string `json:"id_number,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	ServiceID    int64  `json:"service_id,omitempty"`
	Registered   bool   `json:"registered"`
	Ported       bool   `json:"ported"`
	Notes        string `json:"notes,omitempty"`
	// IDDocument, when set, switches the submission to multipart.
	IDDocument         []byte `json:"-"`
	IDDocumentFilename string `json:"-"`
}

// Echo is the upstream's accepted-fields echo of a submission.
type Echo struct {
	ID           int64  `json:"id"`
	BusinessID   int64  `json:"business_id"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	SerialNumber string `json:"serial_number,omitempty"`
	Registered   bool   `json:"registered"`
	Ported       bool   `json:"ported"`
}

// EchoFromJSON decodes an accepted-fields echo.
func EchoFromJSON(node gjson.Result) Echo {
	return Echo{
		ID:           normalize.Int(node, "id", 0),
		BusinessID:   normalize.Int(node, "business_id", 0),
		FullName:     normalize.Str(node, "full_name"),
		Phone:        normalize.Str(node, "phone"),
		SerialNumber: normalize.Str(node, "serial_number"),
		Registered:   normalize.Truthy(node.Get("registered")),
		Ported:       normalize.Truthy(node.Get("ported")),
	}
}

// File is a downloaded export of service details.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}
