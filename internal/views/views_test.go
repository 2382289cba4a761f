package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/booking"
	"flightdesk/internal/metrics"
	"flightdesk/internal/models"
	"flightdesk/internal/session"
	"flightdesk/internal/storage"
	"flightdesk/internal/validation"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGateway = &apperrors.RequestFailedError{Op: "test", Status: 500}

type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	login          func(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	register       func(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	changePassword func(ctx context.Context, req models.ChangePasswordRequest) error
	search         func(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResult, error)
	book           func(ctx context.Context, flightID int64, draft models.BookingDraft) (*models.APIResponse[models.BookingResponse], error)
	history        func(ctx context.Context, email string) ([]models.BookingHistoryItem, error)
	cancel         func(ctx context.Context, pnr string) (string, error)
	addFlight      func(ctx context.Context, req models.AddFlightRequest) (*models.APIResponse[models.Flight], error)
}

func (f *fakeGateway) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.record("login")
	return f.login(ctx, req)
}

func (f *fakeGateway) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.record("register")
	return f.register(ctx, req)
}

func (f *fakeGateway) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	f.record("change_password")
	return f.changePassword(ctx, req)
}

func (f *fakeGateway) SearchFlights(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResult, error) {
	f.record("search")
	return f.search(ctx, req)
}

func (f *fakeGateway) BookFlight(ctx context.Context, flightID int64, draft models.BookingDraft) (*models.APIResponse[models.BookingResponse], error) {
	f.record("book")
	return f.book(ctx, flightID, draft)
}

func (f *fakeGateway) BookingHistory(ctx context.Context, email string) ([]models.BookingHistoryItem, error) {
	f.record("history")
	return f.history(ctx, email)
}

func (f *fakeGateway) CancelBooking(ctx context.Context, pnr string) (string, error) {
	f.record("cancel")
	return f.cancel(ctx, pnr)
}

func (f *fakeGateway) AddFlightInventory(ctx context.Context, req models.AddFlightRequest) (*models.APIResponse[models.Flight], error) {
	f.record("add_flight")
	return f.addFlight(ctx, req)
}

type navRecorder struct {
	paths []string
}

func (n *navRecorder) Navigate(path string) { n.paths = append(n.paths, path) }

func (n *navRecorder) last() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type eventRecorder struct {
	subjects []string
	events   []interface{}
}

func (e *eventRecorder) Publish(subject string, data interface{}) error {
	e.subjects = append(e.subjects, subject)
	e.events = append(e.events, data)
	return nil
}

type fixture struct {
	gw       *fakeGateway
	sessions *session.Store
	nav      *navRecorder
	events   *eventRecorder
	metrics  *metrics.Metrics
	deps     Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		gw:       &fakeGateway{},
		sessions: session.NewStore(storage.NewMemoryStore()),
		nav:      &navRecorder{},
		events:   &eventRecorder{},
		metrics:  metrics.New(),
	}
	f.deps = Deps{Gateway: f.gw, Sessions: f.sessions, Nav: f.nav, Events: f.events, Metrics: f.metrics}
	return f
}

func (f *fixture) loggedIn(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, f.sessions.Save(models.AuthResponse{Token: "jwt", Role: "ROLE_USER"}, email))
}

func TestLoginView_LocalChecks(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"missing password", "a@b.io", "", validation.MsgCredentialsRequired},
		{"missing email", "  ", "secret", validation.MsgCredentialsRequired},
		{"bad email", "not-an-email", "secret", validation.MsgEmailInvalid},
		{"email without dot", "a@b", "secret", validation.MsgEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			v := NewLoginView(f.deps)
			v.Email, v.Password = tt.email, tt.password

			err := v.Submit(context.Background())
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			assert.Equal(t, tt.want, v.Error)
			assert.Empty(t, f.gw.Calls())
		})
	}
}

func TestLoginView_Success(t *testing.T) {
	f := newFixture(t)
	f.gw.login = func(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
		return &models.AuthResponse{Token: "jwt-1", Role: "ROLE_ADMIN"}, nil
	}

	v := NewLoginView(f.deps)
	v.Email, v.Password = "admin@fly.io", "secret"
	require.NoError(t, v.Submit(context.Background()))

	token, _ := f.sessions.Token()
	assert.Equal(t, "jwt-1", token)
	assert.True(t, f.sessions.IsAdmin())
	assert.Equal(t, RouteSearch, f.nav.last())
	assert.Empty(t, v.Password)
	assert.Equal(t, []string{models.EventSessionLogin}, f.events.subjects)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ViewOutcomesTotal.WithLabelValues("login", "success")))
}

func TestLoginView_ForcePasswordChange(t *testing.T) {
	f := newFixture(t)
	f.gw.login = func(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
		return &models.AuthResponse{Token: "jwt-1", ForcePasswordChange: true}, nil
	}

	v := NewLoginView(f.deps)
	v.Email, v.Password = "a@b.io", "secret"
	require.NoError(t, v.Submit(context.Background()))
	assert.Equal(t, RouteChangePassword, f.nav.last())
}

func TestLoginView_FailureIsFixedString(t *testing.T) {
	f := newFixture(t)
	f.gw.login = func(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
		return nil, &apperrors.RequestFailedError{Op: "login", Status: 401}
	}

	v := NewLoginView(f.deps)
	v.Email, v.Password = "a@b.io", "wrong"
	err := v.Submit(context.Background())

	assert.True(t, errors.Is(err, apperrors.ErrRequestFailed))
	assert.Equal(t, MsgInvalidCredentials, v.Error)
	assert.False(t, f.sessions.IsAuthenticated())
	assert.Empty(t, f.nav.paths)
}

func TestRegisterView_WeakPasswordListsEveryRule(t *testing.T) {
	f := newFixture(t)
	v := NewRegisterView(f.deps)
	v.Email, v.Password, v.FullName = "a@b.io", "abc", "Dana"

	err := v.Submit(context.Background())
	require.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Len(t, v.Problems, 4)
	assert.Empty(t, f.gw.Calls())
}

func TestRegisterView_DefaultRoleAndNavigation(t *testing.T) {
	f := newFixture(t)
	var sent models.RegisterRequest
	f.gw.register = func(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
		sent = req
		return &models.AuthResponse{Token: "jwt-2"}, nil
	}

	v := NewRegisterView(f.deps)
	v.Email, v.Password, v.FullName, v.Role = "a@b.io", "Abc12345@", "Dana", ""
	require.NoError(t, v.Submit(context.Background()))

	assert.Equal(t, "ROLE_USER", sent.Role)
	assert.Equal(t, RouteLogin, f.nav.last())
	assert.True(t, f.sessions.IsUser())
}

func TestRegisterView_Failure(t *testing.T) {
	f := newFixture(t)
	f.gw.register = func(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
		return nil, errGateway
	}

	v := NewRegisterView(f.deps)
	v.Email, v.Password, v.FullName = "a@b.io", "Abc12345@", "Dana"
	assert.Error(t, v.Submit(context.Background()))
	assert.Equal(t, MsgRegistrationFailed, v.Error)

	v.FullName = ""
	assert.Error(t, v.Submit(context.Background()))
	assert.Equal(t, validation.MsgAllFieldsRequired, v.Error)
}

func TestChangePasswordView(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t, "a@b.io")
	fail := false
	f.gw.changePassword = func(ctx context.Context, req models.ChangePasswordRequest) error {
		if fail {
			return errGateway
		}
		return nil
	}

	v := NewChangePasswordView(f.deps)
	assert.Equal(t, "a@b.io", v.Email, "prefilled from the session")

	v.OldPassword, v.NewPassword = "Old12345@", "New12345@"
	require.NoError(t, v.Submit(context.Background()))
	assert.Equal(t, MsgPasswordUpdated, v.Success)
	assert.Equal(t, RouteLogin, f.nav.last())

	fail = true
	v.OldPassword, v.NewPassword = "Old12345@", "New12345@"
	assert.Error(t, v.Submit(context.Background()))
	assert.Equal(t, MsgPasswordFailed, v.Error)
	assert.Empty(t, v.Success)
}

func TestSearchView_Validation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(v *SearchView)
		want  string
	}{
		{"missing fields", func(v *SearchView) { v.ToPlace = "" }, validation.MsgAllFieldsRequired},
		{"same places", func(v *SearchView) { v.FromPlace, v.ToPlace = "ALA", "ala" }, msgSamePlaces},
		{"zero seats", func(v *SearchView) { v.NumberOfSeats = 0 }, msgSeatsAtLeastOne},
		{"bad trip type", func(v *SearchView) { v.TripType = "MULTI_CITY" }, msgTripType},
		{"round trip without return", func(v *SearchView) { v.TripType = "ROUND_TRIP" }, msgReturnDateNeeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			v := NewSearchView(f.deps)
			v.FromPlace, v.ToPlace, v.DepartureDate = "ALA", "NQZ", "2026-11-01T10:30"
			tt.setup(v)

			err := v.Submit(context.Background())
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			assert.Contains(t, v.Problems, tt.want)
			assert.Empty(t, f.gw.Calls())
		})
	}
}

func TestSearchView_SendsNormalisedRequest(t *testing.T) {
	f := newFixture(t)
	var sent models.FlightSearchRequest
	f.gw.search = func(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResult, error) {
		sent = req
		return &models.FlightSearchResult{
			OutboundFlights: []models.Flight{{ID: 7, FlightNumber: "FD100"}},
			ReturnFlights:   []models.Flight{{ID: 8, FlightNumber: "FD101"}},
		}, nil
	}

	v := NewSearchView(f.deps)
	v.FromPlace, v.ToPlace = "ALA", "NQZ"
	v.DepartureDate, v.ReturnDate = "2026-11-01T10:30", "2026-11-05T08:00:00"
	v.TripType, v.NumberOfSeats = "round_trip", 2
	require.NoError(t, v.Submit(context.Background()))

	assert.Equal(t, "2026-11-01T10:30:00", sent.DepartureDate)
	assert.Equal(t, "2026-11-05T08:00:00", sent.ReturnDate)
	assert.Equal(t, models.TripRoundTrip, sent.TripType)
	assert.Equal(t, 2, sent.NumberOfSeats)
	require.Len(t, v.Flights, 1)
	require.Len(t, v.ReturnFlights, 1)
}

func TestSearchView_Failure(t *testing.T) {
	f := newFixture(t)
	f.gw.search = func(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResult, error) {
		return nil, errGateway
	}

	v := NewSearchView(f.deps)
	v.FromPlace, v.ToPlace, v.DepartureDate = "ALA", "NQZ", "2026-11-01T10:30"
	assert.Error(t, v.Submit(context.Background()))
	assert.Equal(t, MsgNoFlights, v.Error)
	assert.Empty(t, v.Flights)
}

func TestView_CloseDiscardsLateResult(t *testing.T) {
	f := newFixture(t)
	started := make(chan struct{})
	f.gw.search = func(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResult, error) {
		close(started)
		<-ctx.Done()
		return &models.FlightSearchResult{OutboundFlights: []models.Flight{{ID: 99}}}, nil
	}

	v := NewSearchView(f.deps)
	v.FromPlace, v.ToPlace, v.DepartureDate = "ALA", "NQZ", "2026-11-01T10:30"

	done := make(chan error, 1)
	go func() { done <- v.Submit(context.Background()) }()

	<-started
	v.Close()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, apperrors.ErrCancelled))
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not return after Close")
	}
	assert.Empty(t, v.Flights, "late result must not be applied")
	assert.Empty(t, v.Error)

	assert.True(t, errors.Is(v.Submit(context.Background()), apperrors.ErrCancelled))
}

func TestBookView_SubmitWithoutSessionRedirects(t *testing.T) {
	f := newFixture(t)
	v := NewBookView(f.deps, 7, booking.NewSeatGrid())

	err := v.Submit(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
	assert.Equal(t, RouteLogin, f.nav.last())
	assert.Empty(t, f.gw.Calls())
}

func TestBookView_EmailWithoutTokenIsNoSession(t *testing.T) {
	f := newFixture(t)
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), session.KeyEmail, "a@b.io"))
	f.deps.Sessions = session.NewStore(kv)

	v := NewBookView(f.deps, 7, nil)
	require.NoError(t, v.UpdatePassenger(0, booking.PassengerDetails{Name: "Dana", Age: 30}))
	require.NoError(t, v.ToggleSeat("1A"))

	err := v.Submit(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
	assert.Equal(t, RouteLogin, f.nav.last())
	assert.Empty(t, f.gw.Calls())
}

func TestBookView_RejectsUnknownSeat(t *testing.T) {
	f := newFixture(t)
	v := NewBookView(f.deps, 7, nil)

	assert.True(t, errors.Is(v.ToggleSeat("99Z"), apperrors.ErrValidation))
	assert.Empty(t, v.Form().SelectedSeats())

	require.NoError(t, v.ToggleSeat("12C"))
	assert.Equal(t, []string{"12C"}, v.Form().SelectedSeats())
}

func TestBookView_IncompletePassengers(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t, "a@b.io")
	v := NewBookView(f.deps, 7, nil)

	err := v.Submit(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.NotEmpty(t, v.Problems)
	assert.Empty(t, f.gw.Calls())
}

func TestBookView_Success(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t, "a@b.io")
	var sent models.BookingDraft
	f.gw.book = func(ctx context.Context, flightID int64, draft models.BookingDraft) (*models.APIResponse[models.BookingResponse], error) {
		sent = draft
		return &models.APIResponse[models.BookingResponse]{Success: true, Data: models.BookingResponse{PNR: "PNR7", FlightID: flightID}}, nil
	}

	v := NewBookView(f.deps, 7, nil)
	require.NoError(t, v.SetSeatCount(2))
	require.NoError(t, v.UpdatePassenger(0, booking.PassengerDetails{Name: "Dana", Age: 30}))
	require.NoError(t, v.UpdatePassenger(1, booking.PassengerDetails{Name: "Arman", Age: 8, MealType: models.MealNonVeg}))
	require.NoError(t, v.ToggleSeat("1A"))
	require.NoError(t, v.ToggleSeat("1B"))
	v.SetUserName("Dana")

	require.NoError(t, v.Submit(context.Background()))

	assert.Equal(t, "a@b.io", sent.UserEmail)
	assert.Equal(t, 2, sent.NumberOfSeats)
	assert.Equal(t, "1B", sent.Passengers[1].SeatNumber)
	require.NotNil(t, v.Booking)
	assert.Equal(t, "PNR7", v.Booking.PNR)
	assert.Contains(t, v.Success, "PNR7")

	require.Equal(t, []string{models.EventBookingCreated}, f.events.subjects)
	event := f.events.events[0].(models.BookingCreatedEvent)
	assert.Equal(t, []string{"1A", "1B"}, event.Seats)
}

func TestBookView_Failure(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t, "a@b.io")
	f.gw.book = func(ctx context.Context, flightID int64, draft models.BookingDraft) (*models.APIResponse[models.BookingResponse], error) {
		return nil, errGateway
	}

	v := NewBookView(f.deps, 7, nil)
	require.NoError(t, v.UpdatePassenger(0, booking.PassengerDetails{Name: "Dana", Age: 30}))
	require.NoError(t, v.ToggleSeat("1A"))

	assert.Error(t, v.Submit(context.Background()))
	assert.Equal(t, MsgBookingFailed, v.Error)
	assert.Nil(t, v.Booking)
	assert.Empty(t, f.events.subjects)
}

func TestBookingsView_LoadAndCancel(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t, "a@b.io")
	items := []models.BookingHistoryItem{{PNR: "PNR1", Status: "CONFIRMED"}, {PNR: "PNR2", Status: "CONFIRMED"}}
	f.gw.history = func(ctx context.Context, email string) ([]models.BookingHistoryItem, error) {
		assert.Equal(t, "a@b.io", email)
		return items, nil
	}
	f.gw.cancel = func(ctx context.Context, pnr string) (string, error) {
		items = items[1:]
		return "Booking cancelled", nil
	}

	v := NewBookingsView(f.deps)
	require.NoError(t, v.Load(context.Background()))
	assert.Len(t, v.Bookings, 2)

	require.NoError(t, v.Cancel(context.Background(), "PNR1"))
	assert.Equal(t, "Booking cancelled", v.CancelMessage)
	assert.Len(t, v.Bookings, 1, "list refreshed after cancel")
	assert.Equal(t, []string{"history", "cancel", "history"}, f.gw.Calls())
	assert.Equal(t, []string{models.EventBookingCancelled}, f.events.subjects)
}

func TestBookingsView_Failures(t *testing.T) {
	f := newFixture(t)
	f.loggedIn(t, "a@b.io")
	f.gw.history = func(ctx context.Context, email string) ([]models.BookingHistoryItem, error) {
		return []models.BookingHistoryItem{{PNR: "PNR1"}}, nil
	}
	f.gw.cancel = func(ctx context.Context, pnr string) (string, error) {
		return "", errGateway
	}

	v := NewBookingsView(f.deps)
	err := v.Cancel(context.Background(), "PNR1")
	assert.True(t, errors.Is(err, apperrors.ErrRequestFailed))
	assert.Equal(t, MsgCancelFailed, v.Error)
	assert.Len(t, v.Bookings, 1)

	assert.True(t, errors.Is(v.Cancel(context.Background(), " "), apperrors.ErrValidation))

	f.gw.history = func(ctx context.Context, email string) ([]models.BookingHistoryItem, error) {
		return nil, errGateway
	}
	assert.Error(t, v.Load(context.Background()))
	assert.Equal(t, MsgNoBookings, v.Error)
}

func TestBookingsView_WithoutSession(t *testing.T) {
	f := newFixture(t)
	v := NewBookingsView(f.deps)

	assert.True(t, errors.Is(v.Load(context.Background()), apperrors.ErrUnauthenticated))
	assert.Equal(t, RouteLogin, f.nav.last())
	assert.Empty(t, f.gw.Calls())
}

func TestNavbarView(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessions.Save(models.AuthResponse{Token: "jwt", Role: "ADMIN"}, "root@fly.io"))

	v := NewNavbarView(f.deps)
	assert.True(t, v.Authenticated)
	assert.True(t, v.IsAdmin)
	assert.False(t, v.IsUser)
	assert.Equal(t, "root@fly.io", v.Email)

	v.Logout(context.Background())
	assert.False(t, v.Authenticated)
	assert.Empty(t, v.Email)
	assert.False(t, f.sessions.IsAuthenticated())
	assert.Equal(t, RouteLogin, f.nav.last())
	assert.Equal(t, []string{models.EventSessionLogout}, f.events.subjects)

	v.Logout(context.Background())
	assert.Len(t, f.events.subjects, 1, "logout of an empty session publishes nothing")
}

func TestBookView_State(t *testing.T) {
	f := newFixture(t)
	v := NewBookView(f.deps, 7, nil)
	require.NoError(t, v.ToggleSeat("4B"))

	state := v.State()
	assert.Equal(t, int64(7), state.FlightID)
	assert.Equal(t, 1, state.NumberOfSeats)
	assert.Equal(t, []string{"4B"}, state.SelectedSeats)
	assert.Len(t, state.Rows, 30)
	assert.Equal(t, "4B", state.Passengers[0].SeatNumber)
}

func newAddFlightView(f *fixture) *AddFlightView {
	v := NewAddFlightView(f.deps)
	v.FlightNumber, v.FromPlace, v.ToPlace = "FD200", "ALA", "NQZ"
	v.DepartureDateTime, v.ArrivalDateTime = "2026-12-01T08:00", "2026-12-01T09:45"
	v.TotalSeats, v.EconomySeats, v.BusinessSeats = 180, 150, 30
	v.PriceOneWay = 120.5
	return v
}

func TestAddFlightView_RequiresAdmin(t *testing.T) {
	f := newFixture(t)

	v := newAddFlightView(f)
	err := v.Submit(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
	assert.Equal(t, RouteLogin, f.nav.last())

	f.loggedIn(t, "u@b.io")
	v = newAddFlightView(f)
	err = v.Submit(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	assert.Equal(t, MsgAdminOnly, v.Error)
	assert.Empty(t, f.gw.Calls())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ViewOutcomesTotal.WithLabelValues("add_flight", "forbidden")))
}

func TestAddFlightView_LocalChecks(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(v *AddFlightView)
		error string
	}{
		{"missing flight number", func(v *AddFlightView) { v.FlightNumber = " " }, validation.MsgAllFieldsRequired},
		{"seat split", func(v *AddFlightView) { v.BusinessSeats = 20 }, "Economy + Business seats must equal Total seats"},
		{"arrival equals departure", func(v *AddFlightView) { v.ArrivalDateTime = v.DepartureDateTime }, "Arrival time must be after departure time"},
		{"arrival before departure", func(v *AddFlightView) { v.ArrivalDateTime = "2026-12-01T07:00:00" }, "Arrival time must be after departure time"},
		{"bad date", func(v *AddFlightView) { v.DepartureDateTime = "tomorrow" }, "Departure and arrival must be date-times (YYYY-MM-DDTHH:MM)"},
		{"free flight", func(v *AddFlightView) { v.PriceOneWay = 0 }, "Price must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.sessions.Save(models.AuthResponse{Token: "jwt", Role: "ADMIN"}, "root@b.io"))

			v := newAddFlightView(f)
			tt.edit(v)
			err := v.Submit(context.Background())
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			assert.Equal(t, tt.error, v.Error)
			assert.Empty(t, f.gw.Calls())
		})
	}
}

func TestAddFlightView_Success(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessions.Save(models.AuthResponse{Token: "jwt", Role: "ADMIN"}, "root@b.io"))
	var sent models.AddFlightRequest
	f.gw.addFlight = func(ctx context.Context, req models.AddFlightRequest) (*models.APIResponse[models.Flight], error) {
		sent = req
		return &models.APIResponse[models.Flight]{Success: true, Data: models.Flight{ID: 99, FlightNumber: req.FlightNumber}}, nil
	}

	v := newAddFlightView(f)
	require.NoError(t, v.Submit(context.Background()))

	assert.Equal(t, int64(1), sent.AirlineID)
	assert.Equal(t, "2026-12-01T08:00:00", sent.DepartureDateTime)
	assert.Equal(t, 150, sent.EconomySeats)
	assert.Equal(t, MsgFlightAdded, v.Success)
	require.NotNil(t, v.Flight)
	assert.Equal(t, int64(99), v.Flight.ID)
	assert.Empty(t, v.FlightNumber)
	assert.Zero(t, v.TotalSeats)

	require.Equal(t, []string{models.EventFlightAdded}, f.events.subjects)
	event := f.events.events[0].(models.FlightAddedEvent)
	assert.Equal(t, "root@b.io", event.AddedBy)
}

func TestAddFlightView_Failure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessions.Save(models.AuthResponse{Token: "jwt", Role: "ADMIN"}, "root@b.io"))
	f.gw.addFlight = func(ctx context.Context, req models.AddFlightRequest) (*models.APIResponse[models.Flight], error) {
		return nil, errGateway
	}

	v := newAddFlightView(f)
	assert.Error(t, v.Submit(context.Background()))
	assert.Equal(t, MsgAddFlightFailed, v.Error)
	assert.Equal(t, "FD200", v.FlightNumber, "form keeps its input after a failure")
	assert.Empty(t, f.events.subjects)
}
