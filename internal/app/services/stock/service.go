// Package stock manages SIM stock batches, item issuance and serial
// verification.
package stock

import (
	"context"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/stock"
	"github.com/TelconGH/admin_portal/internal/app/services/base"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

var (
	batchesRules = normalize.Rules{
		Key:         "stock",
		FailMessage: "Unable to load stock batches",
	}
	createBatchRules = normalize.Rules{
		Key:         "stock",
		FailMessage: "Unable to create stock batch",
	}
	createItemsRules = normalize.Rules{
		Key:         "stock",
		FailMessage: "Unable to create stock items",
	}
	// Serial verification uses the permissive rule: a 2xx answer counts
	// as success unless the body explicitly reports failure. This is
	// looser than every other operation and is preserved as observed.
	verifyRules = normalize.Rules{
		Key:         "stock",
		FailMessage: "Unable to verify serial number",
		Mode:        normalize.ModePermissive,
	}
)

// Service is the stock domain service.
type Service struct {
	base.Service
}

// NewService constructs the stock service.
func NewService(client *upstream.Client, log *logger.Logger) *Service {
	return &Service{Service: base.New(client, log)}
}

// Batches lists the stock batches of the session's selected business.
func (s *Service) Batches(ctx context.Context, sess *session.Session) normalize.Result[[]domain.Batch] {
	businessID, fail, ok := base.RequireBusiness(sess)
	if !ok {
		return normalize.Failed[[]domain.Batch](fail)
	}

	out := s.Call(ctx, "stock_batches", batchesSpec(sess.Token, businessID), batchesRules)
	if !out.Success {
		return normalize.Failed[[]domain.Batch](out)
	}

	list := normalize.DecodeList(out, domain.BatchFromJSON)
	return normalize.Succeeded(out, &list)
}

// CreateBatch creates a stock batch. When the input names no business,
// the session's selected business is used.
func (s *Service) CreateBatch(ctx context.Context, sess *session.Session, in domain.BatchInput) normalize.Result[domain.Batch] {
	businessID, fail, ok := base.RequireBusiness(sess)
	if !ok {
		return normalize.Failed[domain.Batch](fail)
	}
	if in.BusinessID == 0 {
		in.BusinessID = businessID
	}

	out := s.Call(ctx, "create_stock_batch", createBatchSpec(sess.Token, in), createBatchRules)
	if !out.Success {
		return normalize.Failed[domain.Batch](out)
	}

	batch := domain.BatchFromJSON(out.Payload)
	return normalize.Succeeded(out, &batch)
}

// CreateItems registers serial numbers under a batch.
func (s *Service) CreateItems(ctx context.Context, sess *session.Session, batchID int64, serials []string) normalize.Result[domain.ItemsResult] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.ItemsResult](fail)
	}
	if len(serials) == 0 {
		return normalize.Failed[domain.ItemsResult](normalize.ValidationFailure(
			"Validation failed",
			map[string][]string{"serial_numbers": {"required"}},
		))
	}

	out := s.Call(ctx, "create_stock_items", createItemsSpec(token, batchID, serials), createItemsRules)
	if !out.Success {
		return normalize.Failed[domain.ItemsResult](out)
	}

	res := domain.ItemsResultFromJSON(out.Payload)
	return normalize.Succeeded(out, &res)
}

// VerifySerial checks a SIM serial number against upstream stock.
func (s *Service) VerifySerial(ctx context.Context, sess *session.Session, serial string) normalize.Result[domain.Verification] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.Verification](fail)
	}

	out := s.Call(ctx, "verify_serial", verifySerialSpec(token, serial), verifyRules)
	if !out.Success {
		return normalize.Failed[domain.Verification](out)
	}

	v := domain.VerificationFromJSON(out.Payload)
	if v.SerialNumber == "" {
		v.SerialNumber = serial
	}
	return normalize.Succeeded(out, &v)
}
