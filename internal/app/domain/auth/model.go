package auth

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/normalize"
)

// User is the authenticated identity as reported by the upstream API.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
}

// UserFromJSON decodes a user record.
func UserFromJSON(node gjson.Result) User {
	return User{
		ID:     normalize.Int(node, "id", 0),
		Name:   normalize.Str(node, "name"),
		Email:  normalize.Str(node, "email"),
		Avatar: normalize.Str(node, "avatar"),
		Role:   normalize.Str(node, "role"),
	}
}

// Credentials is the login input.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the plain-user registration input. Validation tags
// are checked locally before anything is sent upstream.
type Registration struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone,omitempty"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// OwnerRegistration registers a user together with their business.
type OwnerRegistration struct {
	Registration  `validate:"required"`
	BusinessName  string `json:"business_name" validate:"required"`
	BusinessPhone string `json:"business_phone,omitempty"`
	BusinessEmail string `json:"business_email,omitempty" validate:"omitempty,email"`
	Address       string `json:"address,omitempty"`
}
