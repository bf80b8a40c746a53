package customer

import (
	"net/http"
	"strconv"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/customer"
	"github.com/TelconGH/admin_portal/internal/upstream"
)

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// submitSpec sends the detail as JSON, or as multipart when an ID
// document is attached. Multipart boolean flags go over the wire as
// "1"/"0" strings, which is what the upstream form parser expects.
func submitSpec(token string, d domain.Detail) upstream.RequestSpec {
	if d.IDDocument == nil {
		body := map[string]any{
			"business_id": d.BusinessID,
			"full_name":   d.FullName,
			"phone":       d.Phone,
			"registered":  d.Registered,
			"ported":      d.Ported,
		}
		if d.IDType != "" {
			body["id_type"] = d.IDType
		}
		if d.IDNumber != "" {
			body["id_number"] = d.IDNumber
		}
		if d.SerialNumber != "" {
			body["serial_number"] = d.SerialNumber
		}
		if d.ServiceID != 0 {
			body["service_id"] = d.ServiceID
		}
		if d.Notes != "" {
			body["notes"] = d.Notes
		}
		return upstream.RequestSpec{
			Method:  http.MethodPost,
			Path:    "/customer-service-details",
			Headers: upstream.JSONHeaders(token),
			Body:    body,
		}
	}

	parts := []upstream.FormPart{
		{Name: "business_id", Value: strconv.FormatInt(d.BusinessID, 10)},
		{Name: "full_name", Value: d.FullName},
		{Name: "phone", Value: d.Phone},
		{Name: "registered", Value: flag(d.Registered)},
		{Name: "ported", Value: flag(d.Ported)},
	}
	if d.IDType != "" {
		parts = append(parts, upstream.FormPart{Name: "id_type", Value: d.IDType})
	}
	if d.IDNumber != "" {
		parts = append(parts, upstream.FormPart{Name: "id_number", Value: d.IDNumber})
	}
	if d.SerialNumber != "" {
		parts = append(parts, upstream.FormPart{Name: "serial_number", Value: d.SerialNumber})
	}
	if d.ServiceID != 0 {
		parts = append(parts, upstream.FormPart{Name: "service_id", Value: strconv.FormatInt(d.ServiceID, 10)})
	}
	if d.Notes != "" {
		parts = append(parts, upstream.FormPart{Name: "notes", Value: d.Notes})
	}
	filename := d.IDDocumentFilename
	if filename == "" {
		filename = "id_document"
	}
	parts = append(parts, upstream.FormPart{
		Name:     "id_document",
		Filename: filename,
		Content:  d.IDDocument,
	})

	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/customer-service-details",
		Headers: upstream.MultipartHeaders(token),
		Form:    parts,
	}
}

var downloadAccept = map[string]string{
	"csv":   "text/csv",
	"excel": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":   "application/pdf",
}

func downloadSpec(token string, businessID int64, format string) upstream.RequestSpec {
	accept, ok := downloadAccept[format]
	if !ok {
		accept = "application/octet-stream"
	}
	return upstream.RequestSpec{
		Method: http.MethodGet,
		Path: "/customer-service-details/by-business/" +
			strconv.FormatInt(businessID, 10) + "/download/" + format,
		Headers: map[string]string{
			"Accept":        accept,
			"Authorization": "Bearer " + token,
		},
	}
}
