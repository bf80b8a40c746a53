// Package transaction lists and records transactions and reviews
// pending payments.
package transaction

import (
	"context"
	"time"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/transaction"
	"github.com/TelconGH/admin_portal/internal/app/services/base"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

var (
	listRules = normalize.Rules{
		Key:         "transaction",
		FailMessage: "Unable to load transactions",
	}
	getRules = normalize.Rules{
		Key:         "transaction",
		FailMessage: "Unable to load transaction",
	}
	recordRules = normalize.Rules{
		Key:         "transaction",
		FailMessage: "Unable to record transaction",
	}
	reviewRules = normalize.Rules{
		Key:         "payment",
		FailMessage: "Unable to review payment",
	}
)

// Service is the transaction domain service.
type Service struct {
	base.Service
	now func() time.Time
}

// NewService constructs the transaction service.
func NewService(client *upstream.Client, log *logger.Logger) *Service {
	return &Service{
		Service: base.New(client, log),
		now:     time.Now,
	}
}

// List fetches transactions. A zero businessID lists across all of the
// user's businesses; otherwise the business-scoped endpoint is used.
func (s *Service) List(ctx context.Context, sess *session.Session, businessID int64, f domain.Filter) normalize.Result[normalize.Page[domain.Transaction]] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[normalize.Page[domain.Transaction]](fail)
	}

	out := s.Call(ctx, "list_transactions", listSpec(token, businessID, f), listRules)
	if !out.Success {
		return normalize.Failed[normalize.Page[domain.Transaction]](out)
	}

	page := normalize.DecodePage(out, domain.FromJSON)
	return normalize.Succeeded(out, &page)
}

// Get fetches one transaction by id.
func (s *Service) Get(ctx context.Context, sess *session.Session, id int64) normalize.Result[domain.Transaction] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.Transaction](fail)
	}

	out := s.Call(ctx, "get_transaction", getSpec(token, id), getRules)
	if !out.Success {
		return normalize.Failed[domain.Transaction](out)
	}

	tx := domain.FromJSON(out.Payload)
	return normalize.Succeeded(out, &tx)
}

// Record creates a transaction against the selected business.
func (s *Service) Record(ctx context.Context, sess *session.Session, in domain.Input) normalize.Result[domain.Transaction] {
	businessID, fail, ok := base.RequireBusiness(sess)
	if !ok {
		return normalize.Failed[domain.Transaction](fail)
	}
	if in.BusinessID == 0 {
		in.BusinessID = businessID
	}

	out := s.Call(ctx, "record_transaction", recordSpec(sess.Token, in), recordRules)
	if !out.Success {
		return normalize.Failed[domain.Transaction](out)
	}

	tx := domain.FromJSON(out.Payload)
	return normalize.Succeeded(out, &tx)
}

// ApprovePayment approves a pending payment, stamping the review time.
func (s *Service) ApprovePayment(ctx context.Context, sess *session.Session, paymentID int64) normalize.Result[domain.Transaction] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.Transaction](fail)
	}

	out := s.Call(ctx, "approve_payment", approveSpec(token, paymentID, s.now()), reviewRules)
	if !out.Success {
		return normalize.Failed[domain.Transaction](out)
	}

	tx := domain.FromJSON(out.Payload)
	return normalize.Succeeded(out, &tx)
}

// RejectPayment rejects a pending payment with an optional reason.
func (s *Service) RejectPayment(ctx context.Context, sess *session.Session, paymentID int64, reason string) normalize.Result[domain.Transaction] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.Transaction](fail)
	}

	out := s.Call(ctx, "reject_payment", rejectSpec(token, paymentID, reason, s.now()), reviewRules)
	if !out.Success {
		return normalize.Failed[domain.Transaction](out)
	}

	tx := domain.FromJSON(out.Payload)
	return normalize.Succeeded(out, &tx)
}
