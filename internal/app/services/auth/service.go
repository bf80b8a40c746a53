// Package auth implements the login, registration and logout flows
// against the remote TelconGH API, including the session mutations they
// imply.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/auth"
	"github.com/TelconGH/admin_portal/internal/app/domain/business"
	"github.com/TelconGH/admin_portal/internal/app/services/base"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

var (
	loginRules = normalize.Rules{
		Key:         "auth",
		FailMessage: "Login failed",
	}
	registerRules = normalize.Rules{
		Key:         "registration",
		FailMessage: "Registration failed",
	}
	logoutRules = normalize.Rules{
		Key:         "auth",
		FailMessage: "Logout failed",
		Mode:        normalize.ModePermissive,
	}
	refreshRules = normalize.Rules{
		Key:         "auth",
		FailMessage: "Token refresh failed",
	}
)

// LoginData is the typed payload of a successful login or registration.
type LoginData struct {
	User         domain.User         `json:"user"`
	Token        string              `json:"token"`
	RefreshToken string              `json:"refresh_token,omitempty"`
	Businesses   []business.Business `json:"businesses,omitempty"`
	Roles        []string            `json:"roles,omitempty"`
	Permissions  []string            `json:"permissions,omitempty"`
}

// Service is the auth domain service.
type Service struct {
	base.Service
	validate *validator.Validate
}

// NewService constructs the auth service.
func NewService(client *upstream.Client, log *logger.Logger) *Service {
	return &Service{
		Service:  base.New(client, log),
		validate: validator.New(),
	}
}

// Login authenticates against the upstream API and, on success, stores
// identity, token, roles, permissions and businesses on the session.
// The first business in list order becomes the selected business.
func (s *Service) Login(ctx context.Context, sess *session.Session, creds domain.Credentials) normalize.Result[LoginData] {
	out := s.Call(ctx, "login", loginSpec(creds), loginRules)
	if !out.Success {
		return normalize.Failed[LoginData](out)
	}

	data := decodeLoginData(out.Payload, out.Body)
	if data.Token == "" {
		// 2xx with a data envelope but no token: not a usable login.
		fail := normalize.Outcome{
			Success: false,
			Message: loginRules.FailMessage,
			Errors:  map[string][]string{"auth": {"no token in login response"}},
		}
		return normalize.Failed[LoginData](fail)
	}

	sess.ApplyLogin(data.User, data.Token, data.RefreshToken, data.Businesses, data.Roles, data.Permissions)
	return normalize.Succeeded(out, &data)
}

// Register creates a plain user account. Field validation runs locally
// before anything is sent; validation failures surface in the same
// normalized shape as upstream errors. A token in the response logs the
// new user in immediately.
func (s *Service) Register(ctx context.Context, sess *session.Session, reg domain.Registration) normalize.Result[LoginData] {
	if fields := s.validateStruct(reg); len(fields) > 0 {
		return normalize.Failed[LoginData](normalize.ValidationFailure("Validation failed", fields))
	}

	out := s.Call(ctx, "register", registerSpec(reg), registerRules)
	if !out.Success {
		return normalize.Failed[LoginData](out)
	}

	data := decodeLoginData(out.Payload, out.Body)
	if data.Token != "" {
		sess.ApplyLogin(data.User, data.Token, data.RefreshToken, data.Businesses, data.Roles, data.Permissions)
	}
	return normalize.Succeeded(out, &data)
}

// OwnerData is the payload of a business-owner registration.
type OwnerData struct {
	User     domain.User       `json:"user"`
	Business business.Business `json:"business"`
	Token    string            `json:"token,omitempty"`
}

// RegisterBusinessOwner registers a user together with their business.
// The upstream wraps this response either at the top level or beneath a
// data key, and signals success through either the HTTP status or a
// nested data.success flag; both are honored exactly as observed, since
// tightening the rule would silently reject registrations the upstream
// accepted. Top-level fields win for message/errors, nested data fields
// win for user/business/token.
func (s *Service) RegisterBusinessOwner(ctx context.Context, sess *session.Session, reg domain.OwnerRegistration) normalize.Result[OwnerData] {
	if fields := s.validateStruct(reg); len(fields) > 0 {
		return normalize.Failed[OwnerData](normalize.ValidationFailure("Validation failed", fields))
	}

	raw, err := s.Client.Send(ctx, registerOwnerSpec(reg))
	if err != nil {
		out := normalize.TransportFailure(registerRules, err)
		s.Log.WithContext(ctx).WithError(err).WithField("operation", "register_business_owner").Error("upstream call failed")
		return normalize.Failed[OwnerData](out)
	}
	if !gjson.ValidBytes(raw.Body) {
		return normalize.Failed[OwnerData](normalize.Outcome{
			Message: "Invalid JSON response from API",
			Errors:  map[string][]string{"json": {"response body is not valid JSON"}},
		})
	}
	body := gjson.ParseBytes(raw.Body)
	nested := body.Get("data")

	success := raw.OK() || normalize.Truthy(nested.Get("success"))
	if !success {
		msg := normalize.Str(body, "message")
		if msg == "" {
			msg = normalize.Str(nested, "message")
		}
		if msg == "" {
			msg = registerRules.FailMessage
		}
		errs := normalize.ErrorMap(body.Get("errors"))
		if len(errs) == 0 {
			errs = normalize.ErrorMap(nested.Get("errors"))
		}
		if len(errs) == 0 {
			errs = map[string][]string{"registration": {registerRules.FailMessage}}
		}
		s.Log.WithContext(ctx).WithFields(map[string]any{
			"operation": "register_business_owner",
			"status":    raw.Status,
			"success":   false,
		}).Warn("upstream call returned failure")
		return normalize.Failed[OwnerData](normalize.Outcome{Message: msg, Errors: errs})
	}

	// Nested data fields take precedence for the payload.
	userNode := nested.Get("user")
	if !userNode.Exists() {
		userNode = body.Get("user")
	}
	businessNode := nested.Get("business")
	if !businessNode.Exists() {
		businessNode = body.Get("business")
	}
	token := normalize.Str(nested, "token")
	if token == "" {
		token = normalize.Str(body, "token")
	}

	data := OwnerData{
		User:     domain.UserFromJSON(userNode),
		Business: business.FromJSON(businessNode),
		Token:    token,
	}
	if token != "" {
		businesses := []business.Business{}
		if data.Business.ID != 0 {
			businesses = append(businesses, data.Business)
		}
		sess.ApplyLogin(data.User, token, "", businesses, nil, nil)
	}

	s.Log.WithContext(ctx).WithFields(map[string]any{
		"operation": "register_business_owner",
		"status":    raw.Status,
		"success":   true,
		"user_id":   data.User.ID,
	}).Info("upstream call succeeded")

	msg := normalize.Str(body, "message")
	return normalize.Result[OwnerData]{Success: true, Message: msg, Data: &data}
}

// Logout tells the upstream to revoke the token, then clears the
// session's auth state regardless of what the upstream answered.
// Server-side logout is best effort; client-side logout is mandatory.
func (s *Service) Logout(ctx context.Context, sess *session.Session) normalize.Result[normalize.Ack] {
	if sess != nil && sess.Token != "" {
		out := s.Call(ctx, "logout", logoutSpec(sess.Token), logoutRules)
		if !out.Success {
			s.Log.WithContext(ctx).WithField("operation", "logout").Warn("server-side logout failed; clearing session anyway")
		}
	}
	if sess != nil {
		sess.ClearAuth()
	}
	ack := normalize.Ack{Done: true}
	return normalize.Result[normalize.Ack]{Success: true, Message: "Logged out", Data: &ack}
}

// Refresh exchanges the session's refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, sess *session.Session) normalize.Result[LoginData] {
	if sess == nil || sess.RefreshToken == "" {
		return normalize.Failed[LoginData](normalize.PreconditionFailure("no refresh token in session"))
	}

	out := s.Call(ctx, "refresh_token", refreshSpec(sess.RefreshToken), refreshRules)
	if !out.Success {
		return normalize.Failed[LoginData](out)
	}

	data := decodeLoginData(out.Payload, out.Body)
	if data.Token == "" {
		return normalize.Failed[LoginData](normalize.Outcome{
			Message: refreshRules.FailMessage,
			Errors:  map[string][]string{"auth": {"no token in refresh response"}},
		})
	}
	sess.Token = data.Token
	if data.RefreshToken != "" {
		sess.RefreshToken = data.RefreshToken
	}
	return normalize.Succeeded(out, &data)
}

// decodeLoginData extracts the login payload with the ordered fallbacks
// the upstream requires: fields from the resolved payload first, then
// the top level; roles/permissions also probe the nested user object.
func decodeLoginData(payload, body gjson.Result) LoginData {
	token := normalize.Str(payload, "token")
	if token == "" {
		token = normalize.Str(payload, "access_token")
	}
	if token == "" {
		token = normalize.Str(body, "token")
	}

	userNode := payload.Get("user")
	if !userNode.Exists() {
		userNode = payload
	}

	roles := normalize.Strings(payload, "roles")
	if roles == nil {
		roles = normalize.Strings(userNode, "roles")
	}
	perms := normalize.Strings(payload, "permissions")
	if perms == nil {
		perms = normalize.Strings(userNode, "permissions")
	}

	return LoginData{
		User:         domain.UserFromJSON(userNode),
		Token:        token,
		RefreshToken: normalize.Str(payload, "refresh_token"),
		Businesses:   business.ListFromJSON(payload.Get("businesses")),
		Roles:        roles,
		Permissions:  perms,
	}
}

// validateStruct maps validator errors into the field-keyed error shape
// the UI already renders for upstream validation failures.
func (s *Service) validateStruct(v any) map[string][]string {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	fields := make(map[string][]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["registration"] = []string{err.Error()}
		return fields
	}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = append(fields[name], "required")
		case "email":
			fields[name] = append(fields[name], "must be a valid email address")
		case "min":
			fields[name] = append(fields[name], "must be at least "+fe.Param()+" characters")
		case "eqfield":
			fields[name] = append(fields[name], "must match "+strings.ToLower(fe.Param()))
		default:
			fields[name] = append(fields[name], "invalid")
		}
	}
	return fields
}
