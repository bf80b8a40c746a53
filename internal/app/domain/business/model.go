package business

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/normalize"
)

// Business is an opaque upstream record; the portal only reads ID, Name
// and BusinessCode, the rest is carried through for display.
type Business struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	BusinessCode string `json:"business_code"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

// FromJSON decodes one business record.
func FromJSON(node gjson.Result) Business {
	return Business{
		ID:           normalize.Int(node, "id", 0),
		Name:         normalize.Str(node, "name"),
		BusinessCode: normalize.Str(node, "business_code"),
		Address:      normalize.Str(node, "address"),
		Phone:        normalize.Str(node, "phone"),
		Email:        normalize.Str(node, "email"),
	}
}

// ListFromJSON decodes an array node of businesses.
func ListFromJSON(node gjson.Result) []Business {
	if !node.IsArray() {
		return nil
	}
	var out []Business
	for _, item := range node.Array() {
		out = append(out, FromJSON(item))
	}
	return out
}
