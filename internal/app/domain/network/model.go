package network

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/normalize"
)

// Network is a telecom network operator record.
type Network struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Active bool   `json:"active"`
}

// FromJSON decodes one network record.
func FromJSON(node gjson.Result) Network {
	return Network{
		ID:     normalize.Int(node, "id", 0),
		Name:   normalize.Str(node, "name"),
		Code:   normalize.Str(node, "code"),
		Active: normalize.Truthy(node.Get("active")) || normalize.Truthy(node.Get("is_active")),
	}
}

// Service is a sellable service offered on a network (airtime, data
// bundle, SIM registration and so on).
type Service struct {
	ID        int64  `json:"id"`
	NetworkID int64  `json:"network_id"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	Active    bool   `json:"active"`
}

// ServiceFromJSON decodes one network-service record.
func ServiceFromJSON(node gjson.Result) Service {
	return Service{
		ID:        normalize.Int(node, "id", 0),
		NetworkID: normalize.Int(node, "network_id", 0),
		Name:      normalize.Str(node, "name"),
		Code:      normalize.Str(node, "code"),
		Active:    normalize.Truthy(node.Get("active")) || normalize.Truthy(node.Get("is_active")),
	}
}

// Pricing is the reseller price configuration for one network service.
type Pricing struct {
	ID               int64   `json:"id"`
	NetworkServiceID int64   `json:"network_service_id"`
	CostPrice        float64 `json:"cost_price"`
	SellingPrice     float64 `json:"selling_price"`
	Commission       float64 `json:"commission,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	Active           bool    `json:"active"`
}

// PricingFromJSON decodes one pricing record.
func PricingFromJSON(node gjson.Result) Pricing {
	return Pricing{
		ID:               normalize.Int(node, "id", 0),
		NetworkServiceID: normalize.Int(node, "network_service_id", 0),
		CostPrice:        normalize.Float(node, "cost_price", 0),
		SellingPrice:     normalize.Float(node, "selling_price", 0),
		Commission:       normalize.Float(node, "commission", 0),
		Currency:         normalize.Str(node, "currency"),
		Active:           normalize.Truthy(node.Get("active")) || normalize.Truthy(node.Get("is_active")),
	}
}

// PricingInput is the create/update payload for a pricing record.
type PricingInput struct {
	NetworkServiceID int64
	CostPrice        float64
	SellingPrice     float64
	Commission       float64
	Currency         string
	Active           bool
}
