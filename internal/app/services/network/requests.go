package network

import (
	"net/http"
	"strconv"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/network"
	"github.com/TelconGH/admin_portal/internal/upstream"
)

// ListFilter narrows network listings. Zero-valued fields never appear
// in the outgoing query: the upstream treats an empty status filter
// differently from an absent one.
type ListFilter struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}

func listNetworksSpec(token string, f ListFilter) upstream.RequestSpec {
	page := f.Page
	if page <= 0 {
		page = 1
	}
	perPage := f.PerPage
	if perPage <= 0 {
		perPage = 15
	}
	query := map[string]string{
		"page":     strconv.Itoa(page),
		"per_page": strconv.Itoa(perPage),
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Search != "" {
		query["search"] = f.Search
	}
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/networks",
		Headers: upstream.JSONHeaders(token),
		Query:   query,
	}
}

func activeServicesSpec(token string) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/network-services/active",
		Headers: upstream.JSONHeaders(token),
	}
}

func pricingSpec(token string, id int64) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/network-service-pricings/" + strconv.FormatInt(id, 10),
		Headers: upstream.JSONHeaders(token),
	}
}

func savePricingSpec(token string, in domain.PricingInput) upstream.RequestSpec {
	body := map[string]any{
		"network_service_id": in.NetworkServiceID,
		"cost_price":         in.CostPrice,
		"selling_price":      in.SellingPrice,
		"active":             in.Active,
	}
	if in.Commission != 0 {
		body["commission"] = in.Commission
	}
	if in.Currency != "" {
		body["currency"] = in.Currency
	}
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/network-service-pricings",
		Headers: upstream.JSONHeaders(token),
		Body:    body,
	}
}
