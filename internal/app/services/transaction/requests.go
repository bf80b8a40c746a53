package transaction

import (
	"net/http"
	"strconv"
	"time"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/transaction"
	"github.com/TelconGH/admin_portal/internal/upstream"
)

func listSpec(token string, businessID int64, f domain.Filter) upstream.RequestSpec {
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
	if f.DateFrom != "" {
		query["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		query["date_to"] = f.DateTo
	}
	if f.Search != "" {
		query["search"] = f.Search
	}
	if f.SortBy != "" {
		query["sort_by"] = f.SortBy
	}
	if f.SortOrder != "" {
		query["sort_order"] = f.SortOrder
	}

	path := "/transactions"
	if businessID != 0 {
		path = "/transactions/business/" + strconv.FormatInt(businessID, 10)
	}
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    path,
		Headers: upstream.JSONHeaders(token),
		Query:   query,
	}
}

func getSpec(token string, id int64) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/transactions/" + strconv.FormatInt(id, 10),
		Headers: upstream.JSONHeaders(token),
	}
}

func recordSpec(token string, in domain.Input) upstream.RequestSpec {
	body := map[string]any{
		"business_id": in.BusinessID,
		"type":        in.Type,
		"amount":      in.Amount,
	}
	if in.Reference != "" {
		body["reference"] = in.Reference
	}
	if in.Customer != "" {
		body["customer_name"] = in.Customer
	}
	if in.Notes != "" {
		body["notes"] = in.Notes
	}
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/transactions",
		Headers: upstream.JSONHeaders(token),
		Body:    body,
	}
}

// approveSpec and rejectSpec embed the review timestamp in the body;
// they are the only builders whose output differs between two calls
// with identical arguments.

func approveSpec(token string, paymentID int64, reviewedAt time.Time) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/payments/" + strconv.FormatInt(paymentID, 10) + "/approve",
		Headers: upstream.JSONHeaders(token),
		Body: map[string]any{
			"reviewed_at": reviewedAt.UTC().Format(time.RFC3339),
		},
	}
}

func rejectSpec(token string, paymentID int64, reason string, reviewedAt time.Time) upstream.RequestSpec {
	body := map[string]any{
		"reviewed_at": reviewedAt.UTC().Format(time.RFC3339),
	}
	if reason != "" {
		body["reason"] = reason
	}
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/payments/" + strconv.FormatInt(paymentID, 10) + "/reject",
		Headers: upstream.JSONHeaders(token),
		Body:    body,
	}
}
