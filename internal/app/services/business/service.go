// Package business lists the user's businesses and switches the active
// one. Switching is a session-local pointer update; the upstream is not
// involved.
package business

import (
	"context"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/business"
	"github.com/TelconGH/admin_portal/internal/app/domain/rbac"
	"github.com/TelconGH/admin_portal/internal/app/services/base"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

var (
	listRules = normalize.Rules{
		Key:         "business",
		FailMessage: "Unable to load businesses",
		DataPaths:   []string{"data.data", "data", "businesses"},
	}
	usersRules = normalize.Rules{
		Key:         "business",
		FailMessage: "Unable to load business users",
	}
)

// Service is the business domain service.
type Service struct {
	base.Service
}

// NewService constructs the business service.
func NewService(client *upstream.Client, log *logger.Logger) *Service {
	return &Service{Service: base.New(client, log)}
}

// List fetches the businesses visible to the session's user and
// refreshes the session's business list. The selected business is kept
// when it is still present, otherwise it falls back to the first entry.
func (s *Service) List(ctx context.Context, sess *session.Session, page, perPage int) normalize.Result[normalize.Page[domain.Business]] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[normalize.Page[domain.Business]](fail)
	}

	out := s.Call(ctx, "list_businesses", listSpec(token, page, perPage), listRules)
	if !out.Success {
		return normalize.Failed[normalize.Page[domain.Business]](out)
	}

	pageData := normalize.DecodePage(out, domain.FromJSON)
	sess.Businesses = pageData.Items
	if _, found := sess.SelectedBusiness(); !found && len(pageData.Items) > 0 {
		sess.SelectedBusinessID = pageData.Items[0].ID
	}
	return normalize.Succeeded(out, &pageData)
}

// Switch moves the session's selected-business pointer. Only the
// pointer changes; token, roles and the business list stay untouched.
func (s *Service) Switch(ctx context.Context, sess *session.Session, businessID int64) normalize.Result[domain.Business] {
	_, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[domain.Business](fail)
	}

	if !sess.SelectBusiness(businessID) {
		return normalize.Failed[domain.Business](normalize.Outcome{
			Message: "Business not found in your account",
			Errors:  map[string][]string{"business": {"business not found in session"}},
		})
	}
	selected, _ := sess.SelectedBusiness()
	s.Log.WithContext(ctx).WithFields(map[string]any{
		"operation":   "switch_business",
		"business_id": businessID,
		"success":     true,
	}).Info("selected business switched")
	return normalize.Result[domain.Business]{Success: true, Message: "Business switched", Data: &selected}
}

// Users lists the users attached to a business, with their role and
// permission names resolved through the nested-envelope fallbacks.
func (s *Service) Users(ctx context.Context, sess *session.Session, businessID int64, page, perPage int) normalize.Result[normalize.Page[rbac.BusinessUser]] {
	token, fail, ok := base.RequireToken(sess)
	if !ok {
		return normalize.Failed[normalize.Page[rbac.BusinessUser]](fail)
	}

	out := s.Call(ctx, "business_users", usersSpec(token, businessID, page, perPage), usersRules)
	if !out.Success {
		return normalize.Failed[normalize.Page[rbac.BusinessUser]](out)
	}

	pageData := normalize.DecodePage(out, rbac.BusinessUserFromJSON)
	return normalize.Succeeded(out, &pageData)
}
