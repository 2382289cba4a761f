package views

import (
	"context"
	"fmt"
	"time"

	"flightdesk/internal/booking"
	"flightdesk/internal/models"
)

// BookView drives one booking transaction over a FormState.
type BookView struct {
	view
	form *booking.FormState

	Booking *models.BookingResponse `json:"booking,omitempty"`
	Success string                  `json:"success,omitempty"`
}

func NewBookView(deps Deps, flightID int64, grid *booking.SeatGrid) *BookView {
	return &BookView{
		view: newView("book", deps),
		form: booking.NewFormState(flightID, grid),
	}
}

func (v *BookView) Form() *booking.FormState {
	return v.form
}

func (v *BookView) SetSeatCount(n int) error {
	v.reset()
	if err := v.form.SetSeatCount(n); err != nil {
		return v.fail(context.Background(), err, "")
	}
	return nil
}

// ToggleSeat rejects codes the grid never offered.
func (v *BookView) ToggleSeat(code string) error {
	v.reset()
	if !v.form.Grid().Contains(code) {
		return v.invalid(fmt.Sprintf("Seat %q does not exist", code))
	}
	v.form.ToggleSeat(code)
	return nil
}

func (v *BookView) UpdatePassenger(i int, d booking.PassengerDetails) error {
	v.reset()
	if err := v.form.UpdatePassenger(i, d); err != nil {
		return v.fail(context.Background(), err, "")
	}
	return nil
}

func (v *BookView) SetUserName(name string) {
	v.form.SetUserName(name)
}

// Submit sends the draft. Without a session email nothing is sent and
// the user is redirected to login.
func (v *BookView) Submit(ctx context.Context) error {
	v.reset()
	v.Success = ""

	email, ok := v.deps.Sessions.Email()
	if !ok || !v.deps.Sessions.IsAuthenticated() {
		email = ""
	}
	if email != "" {
		if err := v.form.Validate(); err != nil {
			return v.fail(ctx, err, "")
		}
	}
	draft, err := v.form.Submit(email)
	if err != nil {
		return v.fail(ctx, err, "")
	}

	var resp *models.APIResponse[models.BookingResponse]
	err = v.call(ctx, func(ctx context.Context) error {
		var err error
		resp, err = v.deps.Gateway.BookFlight(ctx, draft.FlightID, draft)
		return err
	})
	if err != nil {
		return v.fail(ctx, err, MsgBookingFailed)
	}

	result := resp.Data
	v.Booking = &result
	v.succeed()
	v.Success = bookingMessage(resp)

	seats := make([]string, 0, len(draft.Passengers))
	for _, p := range draft.Passengers {
		seats = append(seats, p.SeatNumber)
	}
	v.publish(ctx, models.EventBookingCreated, models.BookingCreatedEvent{
		PNR:           result.PNR,
		FlightID:      draft.FlightID,
		UserEmail:     draft.UserEmail,
		NumberOfSeats: draft.NumberOfSeats,
		Seats:         seats,
		Timestamp:     time.Now().UTC(),
	})
	return nil
}

func bookingMessage(resp *models.APIResponse[models.BookingResponse]) string {
	if resp.Data.PNR != "" {
		return fmt.Sprintf("Booking successful. PNR: %s", resp.Data.PNR)
	}
	if resp.Message != "" {
		return resp.Message
	}
	return "Booking successful"
}

// BookState is the JSON view-model of the booking view.
type BookState struct {
	FlightID      int64                   `json:"flightId"`
	NumberOfSeats int                     `json:"numberOfSeats"`
	Passengers    []models.Passenger      `json:"passengers"`
	SelectedSeats []string                `json:"selectedSeats"`
	Rows          [][]string              `json:"rows"`
	Booking       *models.BookingResponse `json:"booking,omitempty"`
	Success       string                  `json:"success,omitempty"`
	Error         string                  `json:"error,omitempty"`
	Problems      []string                `json:"problems,omitempty"`
}

func (v *BookView) State() BookState {
	selected := v.form.SelectedSeats()
	if selected == nil {
		selected = []string{}
	}
	return BookState{
		FlightID:      v.form.FlightID(),
		NumberOfSeats: v.form.SeatCount(),
		Passengers:    v.form.Passengers(),
		SelectedSeats: selected,
		Rows:          v.form.Grid().Rows(),
		Booking:       v.Booking,
		Success:       v.Success,
		Error:         v.Error,
		Problems:      v.Problems,
	}
}
