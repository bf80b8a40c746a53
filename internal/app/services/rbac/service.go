// Package rbac administers roles and permissions and their assignment
// to users. Some of these endpoints accept the portal's API key in
// place of a user token, so the token precondition is not enforced
// here; the session token is used when present.
package rbac

import (
	"context"

	domain "github.com/TelconGH/admin_portal/internal/app/domain/rbac"
	"github.com/TelconGH/admin_portal/internal/app/services/base"
	"github.com/TelconGH/admin_portal/internal/normalize"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

var (
	roleRules = normalize.Rules{
		Key:         "role",
		FailMessage: "Unable to manage roles",
	}
	permissionRules = normalize.Rules{
		Key:         "permission",
		FailMessage: "Unable to manage permissions",
	}
	assignRules = normalize.Rules{
		Key:         "role",
		FailMessage: "Unable to update user access",
		Mode:        normalize.ModePermissive,
	}
)

// Service is the role/permission administration service.
type Service struct {
	base.Service
}

// NewService constructs the rbac service.
func NewService(client *upstream.Client, log *logger.Logger) *Service {
	return &Service{Service: base.New(client, log)}
}

func sessionToken(sess *session.Session) string {
	if sess == nil {
		return ""
	}
	return sess.Token
}

// ListRoles fetches a page of roles.
func (s *Service) ListRoles(ctx context.Context, sess *session.Session, page, perPage int) normalize.Result[normalize.Page[domain.Role]] {
	out := s.Call(ctx, "list_roles", listSpec(sessionToken(sess), "roles", page, perPage), roleRules)
	if !out.Success {
		return normalize.Failed[normalize.Page[domain.Role]](out)
	}
	pageData := normalize.DecodePage(out, domain.RoleFromJSON)
	return normalize.Succeeded(out, &pageData)
}

// GetRole fetches one role by id.
func (s *Service) GetRole(ctx context.Context, sess *session.Session, id int64) normalize.Result[domain.Role] {
	out := s.Call(ctx, "get_role", getSpec(sessionToken(sess), "roles", id), roleRules)
	if !out.Success {
		return normalize.Failed[domain.Role](out)
	}
	role := domain.RoleFromJSON(out.Payload)
	return normalize.Succeeded(out, &role)
}

// CreateRole creates a role, optionally with initial permissions.
func (s *Service) CreateRole(ctx context.Context, sess *session.Session, name string, permissions []string) normalize.Result[domain.Role] {
	out := s.Call(ctx, "create_role", createSpec(sessionToken(sess), "roles", name, permissions), roleRules)
	if !out.Success {
		return normalize.Failed[domain.Role](out)
	}
	role := domain.RoleFromJSON(out.Payload)
	return normalize.Succeeded(out, &role)
}

// UpdateRole renames a role and/or replaces its permissions.
func (s *Service) UpdateRole(ctx context.Context, sess *session.Session, id int64, name string, permissions []string) normalize.Result[domain.Role] {
	out := s.Call(ctx, "update_role", updateSpec(sessionToken(sess), "roles", id, name, permissions), roleRules)
	if !out.Success {
		return normalize.Failed[domain.Role](out)
	}
	role := domain.RoleFromJSON(out.Payload)
	return normalize.Succeeded(out, &role)
}

// DeleteRole deletes a role.
func (s *Service) DeleteRole(ctx context.Context, sess *session.Session, id int64) normalize.Result[normalize.Ack] {
	out := s.Call(ctx, "delete_role", deleteSpec(sessionToken(sess), "roles", id), assignRules)
	if !out.Success {
		return normalize.Failed[normalize.Ack](out)
	}
	ack := normalize.Ack{Done: true}
	return normalize.Succeeded(out, &ack)
}

// ListPermissions fetches a page of permissions.
func (s *Service) ListPermissions(ctx context.Context, sess *session.Session, page, perPage int) normalize.Result[normalize.Page[domain.Permission]] {
	out := s.Call(ctx, "list_permissions", listSpec(sessionToken(sess), "permissions", page, perPage), permissionRules)
	if !out.Success {
		return normalize.Failed[normalize.Page[domain.Permission]](out)
	}
	pageData := normalize.DecodePage(out, domain.PermissionFromJSON)
	return normalize.Succeeded(out, &pageData)
}

// CreatePermission creates a permission.
func (s *Service) CreatePermission(ctx context.Context, sess *session.Session, name string) normalize.Result[domain.Permission] {
	out := s.Call(ctx, "create_permission", createSpec(sessionToken(sess), "permissions", name, nil), permissionRules)
	if !out.Success {
		return normalize.Failed[domain.Permission](out)
	}
	perm := domain.PermissionFromJSON(out.Payload)
	return normalize.Succeeded(out, &perm)
}

// UpdatePermission renames a permission.
func (s *Service) UpdatePermission(ctx context.Context, sess *session.Session, id int64, name string) normalize.Result[domain.Permission] {
	out := s.Call(ctx, "update_permission", updateSpec(sessionToken(sess), "permissions", id, name, nil), permissionRules)
	if !out.Success {
		return normalize.Failed[domain.Permission](out)
	}
	perm := domain.PermissionFromJSON(out.Payload)
	return normalize.Succeeded(out, &perm)
}

// DeletePermission deletes a permission.
func (s *Service) DeletePermission(ctx context.Context, sess *session.Session, id int64) normalize.Result[normalize.Ack] {
	out := s.Call(ctx, "delete_permission", deleteSpec(sessionToken(sess), "permissions", id), assignRules)
	if !out.Success {
		return normalize.Failed[normalize.Ack](out)
	}
	ack := normalize.Ack{Done: true}
	return normalize.Succeeded(out, &ack)
}

// AssignRoleToUser grants a role to a user.
func (s *Service) AssignRoleToUser(ctx context.Context, sess *session.Session, userID int64, role string) normalize.Result[normalize.Ack] {
	return s.assign(ctx, sess, "assign_role", "/roles/assign-to-user", userID, role)
}

// RemoveRoleFromUser revokes a role from a user.
func (s *Service) RemoveRoleFromUser(ctx context.Context, sess *session.Session, userID int64, role string) normalize.Result[normalize.Ack] {
	return s.assign(ctx, sess, "remove_role", "/roles/remove-from-user", userID, role)
}

// AssignPermissionToUser grants a permission directly to a user.
func (s *Service) AssignPermissionToUser(ctx context.Context, sess *session.Session, userID int64, permission string) normalize.Result[normalize.Ack] {
	return s.assign(ctx, sess, "assign_permission", "/permissions/assign-to-user", userID, permission)
}

// RemovePermissionFromUser revokes a direct permission from a user.
func (s *Service) RemovePermissionFromUser(ctx context.Context, sess *session.Session, userID int64, permission string) normalize.Result[normalize.Ack] {
	return s.assign(ctx, sess, "remove_permission", "/permissions/remove-from-user", userID, permission)
}

func (s *Service) assign(ctx context.Context, sess *session.Session, operation, path string, userID int64, name string) normalize.Result[normalize.Ack] {
	out := s.Call(ctx, operation, assignSpec(sessionToken(sess), path, userID, name), assignRules)
	if !out.Success {
		return normalize.Failed[normalize.Ack](out)
	}
	ack := normalize.Ack{Done: true}
	return normalize.Succeeded(out, &ack)
}
