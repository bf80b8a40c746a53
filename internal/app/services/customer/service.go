// Package customer submits customer service details and downloads the
// exports the upstream generates from them.
package customer

import (
	"context"
	"fmt"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/customer"
	"github.com/TelconGH/admin_portal/internal/app/services/base"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

var (
	submitRules = normalize.Rules{
		Key:         "customer",
		FailMessage: "Unable to submit customer details",
	}
	downloadRules = normalize.Rules{
		Key:         "customer",
		FailMessage: "Unable to download customer details",
	}
)

// Service is the customer-details domain service.
type Service struct {
	base.Service
}

// NewService constructs the customer service.
func NewService(client *upstream.Client, log *logger.Logger) *Service {
	return &Service{Service: base.New(client, log)}
}

// Submit sends a customer service-detail record. The upstream echoes
// back the fields it accepted.
func (s *Service) Submit(ctx context.Context, sess *session.Session, d domain.Detail) normalize.Result[domain.Echo] {
	businessID, fail, ok := base.RequireBusiness(sess)
	if !ok {
		return normalize.Failed[domain.Echo](fail)
	}
	if d.BusinessID == 0 {
		d.BusinessID = businessID
	}
	if d.FullName == "" || d.Phone == "" {
		fields := map[string][]string{}
		if d.FullName == "" {
			fields["full_name"] = []string{"required"}
		}
		if d.Phone == "" {
			fields["phone"] = []string{"required"}
		}
		return normalize.Failed[domain.Echo](normalize.ValidationFailure("Validation failed", fields))
	}

	out := s.Call(ctx, "submit_customer_details", submitSpec(sess.Token, d), submitRules)
	if !out.Success {
		return normalize.Failed[domain.Echo](out)
	}

	echo := domain.EchoFromJSON(out.Payload)
	return normalize.Succeeded(out, &echo)
}

// Download fetches an export of the selected business's customer
// details in the given format (csv, excel or pdf). The response body is
// raw file bytes, not a JSON envelope.
func (s *Service) Download(ctx context.Context, sess *session.Session, format string) normalize.Result[domain.File] {
	businessID, fail, ok := base.RequireBusiness(sess)
	if !ok {
		return normalize.Failed[domain.File](fail)
	}
	if _, known := downloadAccept[format]; !known {
		return normalize.Failed[domain.File](normalize.ValidationFailure(
			"Unsupported export format",
			map[string][]string{"format": {"must be one of csv, excel, pdf"}},
		))
	}

	raw, fail, ok := s.Raw(ctx, "download_customer_details", downloadSpec(sess.Token, businessID, format), downloadRules)
	if !ok {
		return normalize.Failed[domain.File](fail)
	}

	contentType := raw.Headers.Get("Content-Type")
	if contentType == "" {
		contentType = downloadAccept[format]
	}
	file := domain.File{
		Name:        fmt.Sprintf("customer-service-details-%d.%s", businessID, extensionFor(format)),
		ContentType: contentType,
		Content:     raw.Body,
	}
	return normalize.Result[domain.File]{Success: true, Data: &file}
}

func extensionFor(format string) string {
	if format == "excel" {
		return "xlsx"
	}
	return format
}
