// Package network browses the network and service catalog and manages
// reseller pricing.
package network

import (
	"context"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/network"
	"github.com/TelconGH/admin_portal/internal/app/services/base"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

var (
	networksRules = normalize.Rules{
		Key:         "network",
		FailMessage: "Unable to load networks",
		DataPaths:   []string{"data.data", "data", "networks"},
	}
	servicesRules = normalize.Rules{
		Key:         "network",
		FailMessage: "Unable to load network services",
		DataPaths:   []string{"data.data", "data", "services"},
	}
	pricingRules = normalize.Rules{
		Key:         "pricing",
		FailMessage: "Unable to load pricing",
	}
	savePricingRules = normalize.Rules{
		Key:         "pricing",
		FailMessage: "Unable to save pricing",
	}
)

// Service is the network domain service.
type Service struct {
	base.Service
}

// NewService constructs the network service.
func NewService(client *upstream.Client, log *logger.Logger) *Service {
	return &Service{Service: base.New(client, log)}
}

// ListNetworks fetches the network catalog page described by the filter.
func (s *Service) ListNetworks(ctx context.Context, sess *session.Session, f ListFilter) normalize.Result[normalize.Page[domain.Network]] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[normalize.Page[domain.Network]](fail)
	}

	out := s.Call(ctx, "list_networks", listNetworksSpec(token, f), networksRules)
	if !out.Success {
		return normalize.Failed[normalize.Page[domain.Network]](out)
	}

	page := normalize.DecodePage(out, domain.FromJSON)
	return normalize.Succeeded(out, &page)
}

// ActiveServices fetches the flat list of currently sellable services.
func (s *Service) ActiveServices(ctx context.Context, sess *session.Session) normalize.Result[[]domain.Service] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[[]domain.Service](fail)
	}

	out := s.Call(ctx, "active_network_services", activeServicesSpec(token), servicesRules)
	if !out.Success {
		return normalize.Failed[[]domain.Service](out)
	}

	list := normalize.DecodeList(out, domain.ServiceFromJSON)
	return normalize.Succeeded(out, &list)
}

// Pricing fetches one pricing record by id.
func (s *Service) Pricing(ctx context.Context, sess *session.Session, id int64) normalize.Result[domain.Pricing] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.Pricing](fail)
	}

	out := s.Call(ctx, "get_pricing", pricingSpec(token, id), pricingRules)
	if !out.Success {
		return normalize.Failed[domain.Pricing](out)
	}

	p := domain.PricingFromJSON(out.Payload)
	return normalize.Succeeded(out, &p)
}

// SavePricing creates or updates a pricing record; the upstream decides
// which based on network_service_id.
func (s *Service) SavePricing(ctx context.Context, sess *session.Session, in domain.PricingInput) normalize.Result[domain.Pricing] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.Pricing](fail)
	}

	out := s.Call(ctx, "save_pricing", savePricingSpec(token, in), savePricingRules)
	if !out.Success {
		return normalize.Failed[domain.Pricing](out)
	}

	p := domain.PricingFromJSON(out.Payload)
	return normalize.Succeeded(out, &p)
}
