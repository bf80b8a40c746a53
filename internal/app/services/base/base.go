// Package base is the shared foundation for the domain services: one
// place that sends a built request, normalizes the response, records
// metrics and logs the outcome. Individual services contribute only
// their request builders and typed payload decoding.
package base

import (
	"context"
	"time"

	"github.com/TelconGH/admin_portal/internal/app/metrics"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

// Service carries the collaborators every domain service needs.
type Service struct {
	Client *upstream.Client
	Log    *logger.Logger
}

// New constructs the shared service core.
func New(client *upstream.Client, log *logger.Logger) Service {
	if log == nil {
		log = logger.NewDefault("portal")
	}
	return Service{Client: client, Log: log}
}

// Call sends the spec and normalizes the response. Transport errors are
// folded into the same failure shape as application failures; callers
// never see an error value. Outcomes are logged at info on success,
// warn on normalized failure, error on transport failure.
func (s Service) Call(ctx context.Context, operation string, spec upstream.RequestSpec, rules normalize.Rules) normalize.Outcome {
	start := time.Now()

	raw, err := s.Client.Send(ctx, spec)
	if err != nil {
		metrics.RecordUpstreamCall(operation, "transport_error", time.Since(start))
		s.Log.WithContext(ctx).WithError(err).WithField("operation", operation).Error("upstream call failed")
		return normalize.TransportFailure(rules, err)
	}

	out := normalize.Evaluate(raw, rules)
	if out.Success {
		metrics.RecordUpstreamCall(operation, "success", time.Since(start))
		s.Log.WithContext(ctx).WithFields(map[string]any{
			"operation": operation,
			"status":    raw.Status,
			"success":   true,
		}).Info("upstream call succeeded")
	} else {
		metrics.RecordUpstreamCall(operation, "failure", time.Since(start))
		s.Log.WithContext(ctx).WithFields(map[string]any{
			"operation": operation,
			"status":    raw.Status,
			"success":   false,
			"message":   out.Message,
		}).Warn("upstream call returned failure")
	}
	return out
}

// Raw sends the spec and returns the raw response, for operations whose
// body is not JSON (file downloads). Transport errors come back as a
// failure Outcome; on success the Outcome is zero-valued and ok is true.
func (s Service) Raw(ctx context.Context, operation string, spec upstream.RequestSpec, rules normalize.Rules) (upstream.RawResponse, normalize.Outcome, bool) {
	start := time.Now()

	raw, err := s.Client.Send(ctx, spec)
	if err != nil {
		metrics.RecordUpstreamCall(operation, "transport_error", time.Since(start))
		s.Log.WithContext(ctx).WithError(err).WithField("operation", operation).Error("upstream call failed")
		return upstream.RawResponse{}, normalize.TransportFailure(rules, err), false
	}
	if !raw.OK() {
		metrics.RecordUpstreamCall(operation, "failure", time.Since(start))
		out := normalize.Evaluate(raw, rules)
		s.Log.WithContext(ctx).WithFields(map[string]any{
			"operation": operation,
			"status":    raw.Status,
			"success":   false,
		}).Warn("upstream call returned failure")
		return upstream.RawResponse{}, out, false
	}

	metrics.RecordUpstreamCall(operation, "success", time.Since(start))
	s.Log.WithContext(ctx).WithFields(map[string]any{
		"operation": operation,
		"status":    raw.Status,
		"success":   true,
	}).Info("upstream call succeeded")
	return raw, normalize.Outcome{}, true
}

// RequireToken short-circuits operations that need an authenticated
// session. No network call is made when the token is absent.
func RequireToken(sess *session.Session) (string, normalize.Outcome, bool) {
	if sess == nil || sess.Token == "" {
		return "", normalize.PreconditionFailure("authentication token not found"), false
	}
	return sess.Token, normalize.Outcome{}, true
}

// RequireBusiness short-circuits operations that need a selected
// business in addition to a token.
func RequireBusiness(sess *session.Session) (int64, normalize.Outcome, bool) {
	if sess == nil || sess.Token == "" {
		return 0, normalize.PreconditionFailure("authentication token not found"), false
	}
	if sess.SelectedBusinessID == 0 {
		return 0, normalize.PreconditionFailure("no business selected"), false
	}
	return sess.SelectedBusinessID, normalize.Outcome{}, true
}
