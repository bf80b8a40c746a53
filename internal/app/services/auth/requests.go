package auth

import (
	"net/http"

	"github.com/TelconGH/admin_portal/internal/app/domain/auth"
	"github.com/TelconGH/admin_portal/internal/upstream"
)

// Request builders. Each is a pure construction of the wire call for
// one operation; building never performs I/O and never fails.

func loginSpec(creds auth.Credentials) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/login",
		Headers: upstream.JSONHeaders(""),
		Body: map[string]any{
			"email":    creds.Email,
			"password": creds.Password,
		},
	}
}

func registerSpec(reg auth.Registration) upstream.RequestSpec {
	body := map[string]any{
		"name":                  reg.Name,
		"email":                 reg.Email,
		"password":              reg.Password,
		"password_confirmation": reg.PasswordConfirmation,
	}
	if reg.Phone != "" {
		body["phone"] = reg.Phone
	}
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/register",
		Headers: upstream.JSONHeaders(""),
		Body:    body,
	}
}

func registerOwnerSpec(reg auth.OwnerRegistration) upstream.RequestSpec {
	body := map[string]any{
		"name":                  reg.Name,
		"email":                 reg.Email,
		"password":              reg.Password,
		"password_confirmation": reg.PasswordConfirmation,
		"business_name":         reg.BusinessName,
	}
	// Optional fields are omitted entirely rather than sent empty; the
	// upstream distinguishes "not sent" from "sent as empty".
	if reg.Phone != "" {
		body["phone"] = reg.Phone
	}
	if reg.BusinessPhone != "" {
		body["business_phone"] = reg.BusinessPhone
	}
	if reg.BusinessEmail != "" {
		body["business_email"] = reg.BusinessEmail
	}
	if reg.Address != "" {
		body["address"] = reg.Address
	}
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/register-business-owner",
		Headers: upstream.JSONHeaders(""),
		Body:    body,
	}
}

func logoutSpec(token string) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/logout",
		Headers: upstream.JSONHeaders(token),
	}
}

func refreshSpec(refreshToken string) upstream.RequestSpec {
	return upstream.RequestSpec{
		Method:  http.MethodPost,
		Path:    "/refresh-token",
		Headers: upstream.JSONHeaders(""),
		Body: map[string]any{
			"refresh_token": refreshToken,
		},
	}
}
