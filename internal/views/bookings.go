package views

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "flightdesk/internal/errors"
	"flightdesk/internal/models"
)

type BookingsView struct {
	view

	Email         string                      `json:"email"`
	Bookings      []models.BookingHistoryItem `json:"bookings"`
	CancelMessage string                      `json:"cancelMessage,omitempty"`
}

func NewBookingsView(deps Deps) *BookingsView {
	return &BookingsView{
		view:     newView("bookings", deps),
		Bookings: []models.BookingHistoryItem{},
	}
}

// Load fetches the booking history of the session user.
func (v *BookingsView) Load(ctx context.Context) error {
	v.reset()
	return v.refresh(ctx)
}

func (v *BookingsView) refresh(ctx context.Context) error {
	email, ok := v.deps.Sessions.Email()
	if !ok {
		return v.fail(ctx, apperrors.ErrUnauthenticated, "")
	}
	v.Email = email

	var items []models.BookingHistoryItem
	err := v.call(ctx, func(ctx context.Context) error {
		var err error
		items, err = v.deps.Gateway.BookingHistory(ctx, email)
		return err
	})
	if err != nil {
		return v.fail(ctx, err, MsgNoBookings)
	}

	if items == nil {
		items = []models.BookingHistoryItem{}
	}
	v.Bookings = items
	v.succeed()
	return nil
}

// Cancel cancels one booking and then refreshes the list. A cancellation
// failure keeps its own message even when the refresh succeeds.
func (v *BookingsView) Cancel(ctx context.Context, pnr string) error {
	v.reset()
	v.CancelMessage = ""

	pnr = strings.TrimSpace(pnr)
	if pnr == "" {
		return v.invalid("PNR is required")
	}

	var msg string
	err := v.call(ctx, func(ctx context.Context) error {
		var err error
		msg, err = v.deps.Gateway.CancelBooking(ctx, pnr)
		return err
	})
	if err != nil {
		failErr := v.fail(ctx, err, MsgCancelFailed)
		if errors.Is(failErr, apperrors.ErrCancelled) {
			return failErr
		}
		cancelMsg := v.Error
		v.refresh(ctx)
		v.Error = cancelMsg
		return failErr
	}

	email, _ := v.deps.Sessions.Email()
	v.publish(ctx, models.EventBookingCancelled, models.BookingCancelledEvent{
		PNR:       pnr,
		UserEmail: email,
		Timestamp: time.Now().UTC(),
	})

	v.refresh(ctx)
	v.CancelMessage = msg
	return nil
}
