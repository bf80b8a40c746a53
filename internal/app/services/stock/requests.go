package stock

import (
	"net/http"
	"strconv"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/stock"
	"github.com/TelconGH/admin_portal/internal/upstream"
)

func batchesSpec(token string, businessID int64) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodGet,
		Path:    "/stock/batches/by-business/" + strconv.FormatInt(businessID, 10),
		Headers: upstream.JSONHeaders(token),
	}
}

func createBatchSpec(token string, in domain.BatchInput) upstream.RequestSpec {
	body := map[string]any{
		"business_id": in.BusinessID,
		"name":        in.Name,
		"quantity":    in.Quantity,
	}
	if in.NetworkID != 0 {
		body["network_id"] = in.NetworkID
	}
	if in.Notes != "" {
		body["notes"] = in.Notes
	}
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/stock/batches",
		Headers: upstream.JSONHeaders(token),
		Body:    body,
	}
}

func createItemsSpec(token string, batchID int64, serials []string) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/stock/items",
		Headers: upstream.JSONHeaders(token),
		Body: map[string]any{
			"batch_id":       batchID,
			"serial_numbers": serials,
		},
	}
}

func verifySerialSpec(token, serial string) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/stock/verify-serial-number",
		Headers: upstream.JSONHeaders(token),
		Body: map[string]any{
			"serial_number": serial,
		},
	}
}
