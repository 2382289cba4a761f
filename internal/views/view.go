// Package views holds the view-models of the shell. Each view owns one
// workflow: it checks its input locally, issues at most one gateway call
// and maps the outcome to a navigation, a result or a fixed error string.
//
// A view has a lifetime. Close cancels its pending calls and any result
// that arrives afterwards is discarded.
package views

import (
	"context"
	"errors"
	"strings"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/guard"
	"flightdesk/internal/logger"
	"flightdesk/internal/messaging"
	"flightdesk/internal/metrics"
	"flightdesk/internal/models"
	"flightdesk/internal/session"
)

// User-facing failure strings. Gateway detail never reaches the user.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgRegistrationFailed = "Registration failed"
	MsgPasswordFailed     = "Failed to update password"
	MsgPasswordUpdated    = "Password updated successfully"
	MsgNoFlights          = "No flights found or unauthorized"
	MsgBookingFailed      = "Booking not successful"
	MsgNoBookings         = "No booking found"
	MsgCancelFailed       = "Couldnt Cancel booking"
	MsgAddFlightFailed    = "Failed to add flight"
	MsgFlightAdded        = "Flight added successfully"
	MsgAdminOnly          = "Admin access required"
)

// Routes the views navigate to.
const (
	RouteLogin          = guard.LoginPath
	RouteSearch         = "/search-flights"
	RouteChangePassword = "/change-password"
	RouteBookings       = "/bookings"
	RouteAddFlight      = "/admin/flights"
)

// Outcome labels for metrics.
const (
	outcomeSuccess         = "success"
	outcomeInvalid         = "invalid"
	outcomeFailed          = "failed"
	outcomeCancelled       = "cancelled"
	outcomeUnauthenticated = "unauthenticated"
	outcomeForbidden       = "forbidden"
)

// Gateway is the remote API as the views consume it. *gateway.Client implements it.
type Gateway interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	SearchFlights(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResult, error)
	BookFlight(ctx context.Context, flightID int64, draft models.BookingDraft) (*models.APIResponse[models.BookingResponse], error)
	BookingHistory(ctx context.Context, email string) ([]models.BookingHistoryItem, error)
	CancelBooking(ctx context.Context, pnr string) (string, error)
	AddFlightInventory(ctx context.Context, req models.AddFlightRequest) (*models.APIResponse[models.Flight], error)
}

// Deps are the collaborators every view is built with.
type Deps struct {
	Gateway  Gateway
	Sessions *session.Store
	Nav      guard.Navigator
	Events   messaging.Publisher
	Metrics  *metrics.Metrics
}

type view struct {
	name   string
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc

	Error    string   `json:"error,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

func newView(name string, deps Deps) view {
	ctx, cancel := context.WithCancel(context.Background())
	return view{name: name, deps: deps, ctx: ctx, cancel: cancel}
}

// Close ends the view's lifetime. It is safe to call more than once.
func (v *view) Close() {
	v.cancel()
}

func (v *view) Closed() bool {
	return v.ctx.Err() != nil
}

// call runs fn under a context cancelled by either ctx or the view's
// lifetime. A result that settles after Close is reported as ErrCancelled.
func (v *view) call(ctx context.Context, fn func(context.Context) error) error {
	if v.Closed() {
		return apperrors.ErrCancelled
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(v.ctx, cancel)
	defer stop()

	err := fn(callCtx)
	if v.Closed() || errors.Is(ctx.Err(), context.Canceled) {
		return apperrors.ErrCancelled
	}
	return err
}

func (v *view) reset() {
	v.Error = ""
	v.Problems = nil
}

func (v *view) invalid(problems ...string) error {
	return v.fail(context.Background(), apperrors.NewValidationError(problems...), "")
}

// fail maps err onto the view state and returns it unchanged.
func (v *view) fail(ctx context.Context, err error, msg string) error {
	log := logger.WithContext(ctx).With("view", v.name)

	var verr *apperrors.ValidationError
	switch {
	case errors.Is(err, apperrors.ErrCancelled):
		log.Debug("View call discarded", "error", err)
		v.deps.Metrics.ObserveView(v.name, outcomeCancelled)

	case errors.As(err, &verr):
		v.Problems = verr.Problems
		v.Error = strings.Join(verr.Problems, "; ")
		v.deps.Metrics.ObserveView(v.name, outcomeInvalid)

	case errors.Is(err, apperrors.ErrUnauthenticated):
		log.Info("No session, redirecting to login")
		v.navigate(RouteLogin)
		v.deps.Metrics.ObserveView(v.name, outcomeUnauthenticated)

	case errors.Is(err, apperrors.ErrForbidden):
		log.Info("Role check failed")
		v.Error = MsgAdminOnly
		v.deps.Metrics.ObserveView(v.name, outcomeForbidden)

	default:
		log.Warn("View request failed", "error", err)
		v.Error = msg
		v.deps.Metrics.ObserveView(v.name, outcomeFailed)
	}
	return err
}

func (v *view) succeed() {
	v.reset()
	v.deps.Metrics.ObserveView(v.name, outcomeSuccess)
}

func (v *view) navigate(path string) {
	if v.deps.Nav != nil {
		v.deps.Nav.Navigate(path)
	}
}

// publish emits an activity event. Failures are logged only.
func (v *view) publish(ctx context.Context, subject string, event interface{}) {
	if v.deps.Events == nil {
		return
	}
	if err := v.deps.Events.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Warn("Failed to publish activity event", "subject", subject, "error", err)
	}
}

// saveSession persists the identity. A storage failure is logged and the
// workflow continues.
func (v *view) saveSession(ctx context.Context, resp *models.AuthResponse, email string) {
	if err := v.deps.Sessions.Save(*resp, email); err != nil {
		logger.WithContext(ctx).Error("Failed to persist session", "view", v.name, "error", err)
	}
}
