package views

import (
	"context"
	"time"

	"flightdesk/internal/logger"
	"flightdesk/internal/models"
)

// NavbarView is the role-aware header shown on every page.
type NavbarView struct {
	view

	Authenticated bool        `json:"authenticated"`
	Email         string      `json:"email,omitempty"`
	Role          models.Role `json:"role,omitempty"`
	IsAdmin       bool        `json:"isAdmin"`
	IsUser        bool        `json:"isUser"`
}

func NewNavbarView(deps Deps) *NavbarView {
	v := &NavbarView{view: newView("navbar", deps)}
	v.Refresh()
	return v
}

// Refresh re-reads the session.
func (v *NavbarView) Refresh() {
	s := v.deps.Sessions
	v.Authenticated = s.IsAuthenticated()
	v.Email, _ = s.Email()
	v.Role, _ = s.Role()
	v.IsAdmin = s.IsAdmin()
	v.IsUser = s.IsUser()
}

// Logout clears the session and returns to the login view.
func (v *NavbarView) Logout(ctx context.Context) {
	email, _ := v.deps.Sessions.Email()
	role, _ := v.deps.Sessions.Role()

	if err := v.deps.Sessions.Clear(); err != nil {
		logger.WithContext(ctx).Error("Failed to clear session", "error", err)
	}
	if email != "" {
		v.publish(ctx, models.EventSessionLogout, models.SessionEvent{Email: email, Role: role, Timestamp: time.Now().UTC()})
	}

	v.Refresh()
	v.succeed()
	v.navigate(RouteLogin)
}
