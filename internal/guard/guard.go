// Package guard decides whether a protected route may be entered.
package guard

// LoginPath is where a denied navigation is sent.
const LoginPath = "/login"

// Navigator moves the shell to another route.
type Navigator interface {
	Navigate(path string)
}

// TokenChecker reports whether a session token exists. *session.Store implements it.
type TokenChecker interface {
	IsAuthenticated() bool
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Guard is stateless: every call re-reads the session.
type Guard struct {
	sessions TokenChecker
	nav      Navigator
}

func New(sessions TokenChecker, nav Navigator) *Guard {
	return &Guard{sessions: sessions, nav: nav}
}

// CanActivate permits entry when a token is present. Otherwise it
// navigates to the login view and denies. No expiry or role check.
func (g *Guard) CanActivate(route string) bool {
	if g.sessions.IsAuthenticated() {
		return true
	}
	if g.nav != nil {
		g.nav.Navigate(LoginPath)
	}
	return false
}
