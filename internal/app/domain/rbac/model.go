package rbac

import (
	"github.com/tidwall/gjson"

	"github.com/TelconGH/admin_portal/internal/normalize"
)

// Role is a named role with its permission names.
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	GuardName   string   `json:"guard_name,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// RoleFromJSON decodes one role record. Permissions arrive either as
// strings or as objects with a name field.
func RoleFromJSON(node gjson.Result) Role {
	return Role{
		ID:          normalize.Int(node, "id", 0),
		Name:        normalize.Str(node, "name"),
		GuardName:   normalize.Str(node, "guard_name"),
		Permissions: normalize.Strings(node, "permissions"),
	}
}

// Permission is a named permission.
type Permission struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	GuardName string `json:"guard_name,omitempty"`
}

// PermissionFromJSON decodes one permission record.
func PermissionFromJSON(node gjson.Result) Permission {
	return Permission{
		ID:        normalize.Int(node, "id", 0),
		Name:      normalize.Str(node, "name"),
		GuardName: normalize.Str(node, "guard_name"),
	}
}

// BusinessUser is a user attached to a business, with role and
// permission names. The upstream nests the user record and its roles
// inconsistently; a missing nested object degrades to empty fields.
type BusinessUser struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"user_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// BusinessUserFromJSON decodes one business-user record, probing the
// nested user object before falling back to top-level fields.
func BusinessUserFromJSON(node gjson.Result) BusinessUser {
	bu := BusinessUser{
		ID:     normalize.Int(node, "id", 0),
		UserID: normalize.Int(node, "user_id", 0),
	}

	user := node.Get("user")
	if !user.IsObject() {
		user = node
	}
	if bu.UserID == 0 {
		bu.UserID = normalize.Int(user, "id", 0)
	}
	bu.Name = normalize.Str(user, "name")
	bu.Email = normalize.Str(user, "email")

	bu.Roles = normalize.Strings(user, "roles")
	if bu.Roles == nil {
		bu.Roles = normalize.Strings(node, "roles")
	}
	bu.Permissions = normalize.Strings(user, "permissions")
	if bu.Permissions == nil {
		bu.Permissions = normalize.Strings(node, "permissions")
	}
	return bu
}
