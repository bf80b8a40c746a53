// Package session holds per-user portal session state: identity, the
// upstream bearer token, the business list and the selected business.
// The session is an explicit object passed into every domain-service
// call; there is no ambient global state.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/TelconGH/admin_portal/internal/app/domain/auth"
	"github.com/TelconGH/admin_portal/internal/app/domain/business"
)

// ErrNotFound is returned by stores when no session exists for an id.
var ErrNotFound = errors.New("session not found")

// Session is one user's portal session. It has exactly two meaningful
// states: anonymous (no token) and authenticated. Login overwrites the
// identity fields; logout clears them all unconditionally.
type Session struct {
	ID string `json:"id"`

	Authenticated bool      `json:"authenticated"`
	User          auth.User `json:"user"`
	Token         string    `json:"token"`
	RefreshToken  string    `json:"refresh_token,omitempty"`

	Businesses         []business.Business `json:"businesses,omitempty"`
	SelectedBusinessID int64               `json:"selected_business_id,omitempty"`

	Roles       []string  `json:"roles,omitempty"`
	Permissions []string  `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// New creates an anonymous session with a fresh id.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// ApplyLogin overwrites the auth-related state from a successful login
// or registration. The first business in list order becomes the
// selected business.
func (s *Session) ApplyLogin(user auth.User, token, refreshToken string, businesses []business.Business, roles, permissions []string) {
	s.Authenticated = true
	s.User = user
	s.Token = token
	s.RefreshToken = refreshToken
	s.Businesses = businesses
	s.Roles = roles
	s.Permissions = permissions
	s.SelectedBusinessID = 0
	if len(businesses) > 0 {
		s.SelectedBusinessID = businesses[0].ID
	}
}

// ClearAuth drops every auth-related field, returning the session to the
// anonymous state. Called on logout regardless of whether the upstream
// logout call succeeded.
func (s *Session) ClearAuth() {
	s.Authenticated = false
	s.User = auth.User{}
	s.Token = ""
	s.RefreshToken = ""
	s.Businesses = nil
	s.SelectedBusinessID = 0
	s.Roles = nil
	s.Permissions = nil
}

// SelectedBusiness returns the currently selected business, if any.
func (s *Session) SelectedBusiness() (business.Business, bool) {
	for _, b := range s.Businesses {
		if b.ID == s.SelectedBusinessID {
			return b, true
		}
	}
	return business.Business{}, false
}

// SelectBusiness moves the selected-business pointer. The target must
// be in the session's business list.
func (s *Session) SelectBusiness(id int64) bool {
	for _, b := range s.Businesses {
		if b.ID == id {
			s.SelectedBusinessID = id
			return true
		}
	}
	return false
}

// HasRole reports whether the session carries the named role.
func (s *Session) HasRole(name string) bool {
	for _, r := range s.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasPermission reports whether the session carries the named permission.
func (s *Session) HasPermission(name string) bool {
	for _, p := range s.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// Store persists sessions keyed by session id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
